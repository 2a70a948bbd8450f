package documents

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func RegisterDocumentsRoutes(r *gin.RouterGroup) {
	r.POST("/documents", CreateDocument)
	r.GET("/documents", GetAllDocuments)
	r.GET("/documents/:id", GetDocumentByID)
	r.DELETE("/documents/:id", DeleteDocument)
}

func CreateDocument(c *gin.Context) {
	var document models.Document
	if err := c.ShouldBindJSON(&document); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var group models.Group
	if err := utils.DB.First(&group, "id = ?", document.GroupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found."})
		return
	}

	now := time.Now()
	document.ID = uuid.NewString()
	if document.UploadDate.IsZero() {
		document.UploadDate = now
	}
	document.CreatedOn = now
	document.ModifiedOn = now

	if err := utils.DB.Create(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document."})
		return
	}

	c.JSON(http.StatusCreated, document)
}

func GetAllDocuments(c *gin.Context) {
	var documents []models.Document
	if err := utils.DB.Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents."})
		return
	}
	c.JSON(http.StatusOK, documents)
}

func GetDocumentByID(c *gin.Context) {
	var document models.Document
	if err := utils.DB.First(&document, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found."})
		return
	}
	c.JSON(http.StatusOK, document)
}

func DeleteDocument(c *gin.Context) {
	if err := utils.DB.Delete(&models.Document{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted."})
}
