package auth

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

const tempPasswordValidity = 24 * time.Hour

// generateTempPassword builds a random 10-character temporary password
func generateTempPassword() string {
	source := rand.NewSource(time.Now().UnixNano())
	r := rand.New(source)
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	pw := make([]byte, 10)
	for i := range pw {
		pw[i] = chars[r.Intn(len(chars))]
	}
	return string(pw)
}

// ForgotPassword resets a member's password to an emailed temporary one
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid email."})
		return
	}

	var member models.Member
	if err := utils.DB.Where("email = ?", input.Email).First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No member found with that email."})
		return
	}

	tempPassword := generateTempPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password."})
		return
	}

	now := time.Now()
	member.Password = string(hashed)
	member.ModifiedOn = now
	if err := utils.DB.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password."})
		return
	}

	reset := models.PasswordReset{
		ID:        uuid.NewString(),
		MemberID:  member.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(tempPasswordValidity),
		TenantID:  member.TenantID,
	}
	if err := utils.DB.Create(&reset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record password reset."})
		return
	}

	go utils.SendPasswordResetEmail(member.Email, member.FirstName, tempPassword)

	c.JSON(http.StatusOK, gin.H{"message": "A new password has been sent to your email."})
}
