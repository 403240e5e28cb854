package statistics

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/stats")
	statsGroup.GET("/today", Today)
	statsGroup.GET("/daily", Daily)
	statsGroup.GET("/monthly-trend", MonthlyTrend)
	statsGroup.GET("/distribution", Distribution)
	statsGroup.GET("/weekday", Weekday)
	statsGroup.GET("/user-summary", UserSummary)
	statsGroup.GET("/group-summary", GroupSummary)
}
