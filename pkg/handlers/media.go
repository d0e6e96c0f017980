package handlers

import (
	"net/http"

	"landing-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

func ListMedia(c *gin.Context) {
	files, err := services.ListMediaFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list media: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, files)
}

func UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	info, err := services.SaveMediaFile(file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func DeleteMedia(c *gin.Context) {
	if err := services.DeleteMediaFile(c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
