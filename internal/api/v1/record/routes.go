package record

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", ListActiveUsers)
	router.GET("/records", ListRecords)
	router.POST("/records", PlaceOrder)
	router.PATCH("/records/:id/rating", RateRecord)
}
