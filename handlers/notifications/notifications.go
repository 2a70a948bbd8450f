package notifications

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func RegisterNotificationsRoutes(r *gin.RouterGroup) {
	r.POST("/notifications", CreateNotification)
	r.GET("/notifications", GetAllNotifications)
	r.GET("/notifications/:id", GetNotificationByID)
	r.GET("/notifications/member/:memberId", GetNotificationsByMember)
	r.PUT("/notifications/:id", UpdateNotification)
	r.POST("/notifications/send-to-group/:groupId", SendToGroup)
	r.PATCH("/notifications/:id/mark-as-read", MarkAsRead)
	r.PATCH("/notifications/mark-many-as-read", MarkManyAsRead)
	r.DELETE("/notifications/:id", DeleteNotification)
}

func CreateNotification(c *gin.Context) {
	var notification models.Notification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var member models.Member
	if err := utils.DB.First(&member, "id = ?", notification.MemberID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found."})
		return
	}

	now := time.Now()
	notification.ID = uuid.NewString()
	if notification.SendDate.IsZero() {
		notification.SendDate = now
	}
	notification.Read = false
	notification.CreatedOn = now
	notification.ModifiedOn = now

	if err := utils.DB.Create(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification."})
		return
	}

	c.JSON(http.StatusCreated, notification)
}

func GetAllNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := utils.DB.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications."})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func GetNotificationByID(c *gin.Context) {
	var notification models.Notification
	if err := utils.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found."})
		return
	}
	c.JSON(http.StatusOK, notification)
}

func GetNotificationsByMember(c *gin.Context) {
	var notifications []models.Notification
	if err := utils.DB.Where("member_id = ?", c.Param("memberId")).
		Order("send_date DESC").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications."})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func UpdateNotification(c *gin.Context) {
	var notification models.Notification
	if err := utils.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found."})
		return
	}

	var details models.Notification
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification.Type = details.Type
	notification.MessageContent = details.MessageContent
	notification.Channel = details.Channel
	notification.Read = details.Read
	notification.ModifiedBy = details.ModifiedBy
	notification.ModifiedOn = time.Now()

	if err := utils.DB.Save(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification."})
		return
	}

	c.JSON(http.StatusOK, notification)
}

type groupMessageInput struct {
	Type           string `json:"type"`
	MessageContent string `json:"message_content" binding:"required"`
	Channel        string `json:"channel"`
	CreatedBy      string `json:"created_by"`
}

// SendToGroup writes one notification per active group member.
func SendToGroup(c *gin.Context) {
	var input groupMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var group models.Group
	if err := utils.DB.Preload("Members").First(&group, "id = ?", c.Param("groupId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found."})
		return
	}

	if input.Type == "" {
		input.Type = "GROUP_ANNOUNCEMENT"
	}
	if input.Channel == "" {
		input.Channel = "IN_APP"
	}

	now := time.Now()
	notifications := make([]models.Notification, 0, len(group.Members))
	for _, member := range group.Members {
		notifications = append(notifications, models.Notification{
			ID:             uuid.NewString(),
			MemberID:       member.ID,
			Type:           input.Type,
			MessageContent: input.MessageContent,
			SendDate:       now,
			Channel:        input.Channel,
			CreatedBy:      input.CreatedBy,
			CreatedOn:      now,
			ModifiedOn:     now,
			TenantID:       group.TenantID,
		})
	}

	if len(notifications) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Group has no members to notify.", "sent": 0})
		return
	}

	if err := utils.DB.Create(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notifications."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Notifications sent.", "sent": len(notifications)})
}

func MarkAsRead(c *gin.Context) {
	var notification models.Notification
	if err := utils.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found."})
		return
	}

	notification.Read = true
	notification.ModifiedOn = time.Now()

	if err := utils.DB.Save(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification."})
		return
	}

	c.JSON(http.StatusOK, notification)
}

type markManyInput struct {
	IDs []string `json:"ids" binding:"required"`
}

func MarkManyAsRead(c *gin.Context) {
	var input markManyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No notification ids provided."})
		return
	}

	result := utils.DB.Model(&models.Notification{}).
		Where("id IN ?", input.IDs).
		Updates(map[string]interface{}{"is_read": true, "modified_on": time.Now()})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read.", "updated": result.RowsAffected})
}

func DeleteNotification(c *gin.Context) {
	if err := utils.DB.Delete(&models.Notification{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted."})
}
