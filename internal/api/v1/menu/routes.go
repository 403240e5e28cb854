package menu

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/menu", GetMenu)
	router.PUT("/menu", SetMenu)
}
