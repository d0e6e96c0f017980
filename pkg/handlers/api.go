package handlers

import (
	"net/http"

	"landing-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

func HandleBuild(c *gin.Context) {
	log, err := services.BuildSite()
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func HandleExport(c *gin.Context) {
	path, err := services.ExportLandingData()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "ok", "path": path})
}

func HandleSync(c *gin.Context) {
	token := gitToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "GitHub login required"})
		return
	}
	log, err := services.SyncRepo(token)
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func HandlePublish(c *gin.Context) {
	token := gitToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "GitHub login required"})
		return
	}
	log, err := services.PublishRepo(token)
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func ListPosts(c *gin.Context) {
	posts, err := services.GetPostsCache()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch posts"})
		return
	}
	if posts == nil {
		c.JSON(http.StatusOK, []interface{}{})
		return
	}
	c.JSON(http.StatusOK, posts)
}
