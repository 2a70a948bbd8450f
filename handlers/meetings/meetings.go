package meetings

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func RegisterMeetingsRoutes(r *gin.RouterGroup) {
	r.POST("/meetings", CreateMeeting)
	r.GET("/meetings", GetAllMeetings)
	r.GET("/meetings/:id", GetMeetingByID)
	r.DELETE("/meetings/:id", DeleteMeeting)
}

func CreateMeeting(c *gin.Context) {
	var meeting models.Meeting
	if err := c.ShouldBindJSON(&meeting); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var group models.Group
	if err := utils.DB.First(&group, "id = ?", meeting.GroupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found."})
		return
	}

	now := time.Now()
	meeting.ID = uuid.NewString()
	meeting.CreatedOn = now
	meeting.ModifiedOn = now

	if err := utils.DB.Create(&meeting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meeting."})
		return
	}

	c.JSON(http.StatusCreated, meeting)
}

func GetAllMeetings(c *gin.Context) {
	var meetings []models.Meeting
	if err := utils.DB.Find(&meetings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meetings."})
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func GetMeetingByID(c *gin.Context) {
	var meeting models.Meeting
	if err := utils.DB.First(&meeting, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found."})
		return
	}
	c.JSON(http.StatusOK, meeting)
}

func DeleteMeeting(c *gin.Context) {
	if err := utils.DB.Delete(&models.Meeting{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meeting."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meeting deleted."})
}
