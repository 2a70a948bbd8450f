package members

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func RegisterMembersRoutes(r *gin.RouterGroup) {
	r.POST("/members", CreateMember)
	r.GET("/members", GetAllMembers)
	r.GET("/members/:id", GetMemberByID)
	r.PUT("/members/:id", UpdateMember)
	r.DELETE("/members/:id", DeleteMember)
	r.GET("/members/by-group/:groupId", GetMembersByGroup)
}

func CreateMember(c *gin.Context) {
	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Member
	if err := utils.DB.Where("email = ?", member.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A member with that email already exists."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(member.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member."})
		return
	}

	now := time.Now()
	member.ID = uuid.NewString()
	member.Password = string(hashed)
	if member.Status == "" {
		member.Status = models.MemberStatusActive
	}
	if member.JoinDate.IsZero() {
		member.JoinDate = now
	}
	member.CreatedOn = now
	member.ModifiedOn = now

	if err := utils.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member."})
		return
	}

	member.Password = ""
	c.JSON(http.StatusCreated, member)
}

func GetAllMembers(c *gin.Context) {
	var members []models.Member
	if err := utils.DB.Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members."})
		return
	}
	for i := range members {
		members[i].Password = ""
	}
	c.JSON(http.StatusOK, members)
}

func GetMemberByID(c *gin.Context) {
	var member models.Member
	if err := utils.DB.First(&member, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found."})
		return
	}
	member.Password = ""
	c.JSON(http.StatusOK, member)
}

func UpdateMember(c *gin.Context) {
	var member models.Member
	if err := utils.DB.First(&member, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found."})
		return
	}

	var details models.Member
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member.FirstName = details.FirstName
	member.LastName = details.LastName
	member.Email = details.Email
	member.PhoneNumber = details.PhoneNumber
	member.GroupID = details.GroupID
	member.Role = details.Role
	if details.Status != "" {
		member.Status = details.Status
	}
	if details.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(details.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member."})
			return
		}
		member.Password = string(hashed)
	}
	member.ModifiedBy = details.ModifiedBy
	member.ModifiedOn = time.Now()

	if err := utils.DB.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member."})
		return
	}

	member.Password = ""
	c.JSON(http.StatusOK, member)
}

func DeleteMember(c *gin.Context) {
	if err := utils.DB.Delete(&models.Member{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted."})
}

func GetMembersByGroup(c *gin.Context) {
	var members []models.Member
	if err := utils.DB.Where("group_id = ?", c.Param("groupId")).Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members."})
		return
	}
	for i := range members {
		members[i].Password = ""
	}
	c.JSON(http.StatusOK, members)
}
