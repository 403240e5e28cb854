package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/login", Login)
	auth.POST("/logout", middleware.AuthMiddleware(), Logout)
}
