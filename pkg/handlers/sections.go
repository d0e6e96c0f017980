package handlers

import (
	"net/http"
	"strconv"

	"landing-cms/pkg/models"
	"landing-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

func populateDepth(c *gin.Context) int {
	depth, err := strconv.Atoi(c.DefaultQuery("depth", "0"))
	if err != nil || depth < 0 {
		return 0
	}
	return depth
}

func ListSections(c *gin.Context) {
	filter := services.SectionFilter{Type: models.SectionType(c.Query("type"))}
	docs, err := services.ListSections(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if populateDepth(c) > 0 {
		views, err := services.PopulateSections(docs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"docs": views, "totalDocs": len(views)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"docs": docs, "totalDocs": len(docs)})
}

func GetSection(c *gin.Context) {
	doc, err := services.GetSection(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if populateDepth(c) > 0 {
		view, err := services.PopulateSection(doc)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func CreateSection(c *gin.Context) {
	var doc models.SectionDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	created, err := services.CreateSection(doc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"doc": created, "message": "Landing section created"})
}

func UpdateSection(c *gin.Context) {
	var doc models.SectionDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	updated, err := services.UpdateSection(c.Param("id"), doc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doc": updated, "message": "Landing section updated"})
}

func PatchSection(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	updated, err := services.PatchSection(c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doc": updated, "message": "Landing section updated"})
}

func DeleteSection(c *gin.Context) {
	id := c.Param("id")
	if err := services.DeleteSection(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Landing section deleted"})
}

func DiffSection(c *gin.Context) {
	var doc models.SectionDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}

	diffStr, diffType, err := services.DiffSection(c.Param("id"), doc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diff": diffStr, "type": diffType})
}

// GetSchema returns the collection declaration in the requested format.
func GetSchema(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	content, err := services.ExportSchema(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := "application/json; charset=utf-8"
	switch format {
	case "yaml":
		contentType = "application/yaml; charset=utf-8"
	case "toml":
		contentType = "application/toml; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, content)
}

// GetFormState tells the admin form which fields to render for the
// in-progress record in the body.
func GetFormState(c *gin.Context) {
	var doc models.SectionDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.GetFormState(doc))
}
