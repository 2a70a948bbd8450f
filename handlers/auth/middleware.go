package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		memberID, err := utils.ExtractMemberIDFromToken(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		var member models.Member
		if err := utils.DB.First(&member, "id = ?", memberID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Member not found"})
			c.Abort()
			return
		}

		c.Set("member", member)

		c.Next()
	}
}
