package auth

import "github.com/gin-gonic/gin"

func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", Login)
	r.POST("/auth/forgot-password", ForgotPassword)
}
