package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", ListUsers)
	router.POST("/users", CreateUser)
	router.POST("/users/bulk", BulkAction)
	router.POST("/users/import", ImportRoster)
	router.PATCH("/users/:id", UpdateUser)
	router.DELETE("/users/:id", DeleteUser)
}
