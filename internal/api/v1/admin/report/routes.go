package report

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	reports.GET("/daily", DailyReport)
	reports.GET("/monthly", MonthlyReport)
	reports.GET("/rating", RatingReport)
	reports.GET("/billing", BillingReport)
	reports.GET("/users", RosterReport)
	reports.GET("/comprehensive", ComprehensiveReport)
}
