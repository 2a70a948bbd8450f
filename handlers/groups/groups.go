package groups

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func RegisterGroupsRoutes(r *gin.RouterGroup) {
	r.POST("/groups", CreateGroup)
	r.GET("/groups", GetAllGroups)
	r.GET("/groups/:id", GetGroupByID)
	r.DELETE("/groups/:id", DeleteGroup)
	r.GET("/groups/groupadmin/:creatorId", GetGroupsByCreator)
	r.PUT("/groups/:id/terminate", TerminateGroup)
}

func CreateGroup(c *gin.Context) {
	var group models.Group
	if err := c.ShouldBindJSON(&group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	group.ID = uuid.NewString()
	if group.Status == "" {
		group.Status = models.GroupStatusActive
	}
	if group.CreationDate.IsZero() {
		group.CreationDate = now
	}
	group.CreatedOn = now
	group.ModifiedOn = now

	if err := utils.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group."})
		return
	}

	c.JSON(http.StatusCreated, group)
}

func GetAllGroups(c *gin.Context) {
	var groups []models.Group
	if err := utils.DB.Preload("Members").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups."})
		return
	}
	c.JSON(http.StatusOK, groups)
}

func GetGroupByID(c *gin.Context) {
	var group models.Group
	if err := utils.DB.Preload("Members").First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found."})
		return
	}
	c.JSON(http.StatusOK, group)
}

func DeleteGroup(c *gin.Context) {
	if err := utils.DB.Delete(&models.Group{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted."})
}

func GetGroupsByCreator(c *gin.Context) {
	var groups []models.Group
	if err := utils.DB.Where("created_by = ?", c.Param("creatorId")).Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups."})
		return
	}
	c.JSON(http.StatusOK, groups)
}

func TerminateGroup(c *gin.Context) {
	var group models.Group
	if err := utils.DB.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found."})
		return
	}

	group.Status = models.GroupStatusTerminated
	group.ModifiedOn = time.Now()
	if err := utils.DB.Save(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to terminate group."})
		return
	}

	c.JSON(http.StatusOK, group)
}
