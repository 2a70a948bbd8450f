package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid email and password."})
		return
	}

	var member models.Member
	if err := utils.DB.Where("email = ?", input.Email).First(&member).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	if member.Status != models.MemberStatusActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Member account is not active."})
		return
	}

	tokenString, err := utils.GenerateAccessToken(member.ID, member.Role, member.TenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	member.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   tokenString,
		"member":  member,
	})
}
