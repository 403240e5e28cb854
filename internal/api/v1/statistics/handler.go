package statistics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/stats"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
)

// queryFilter reads the date-range filter from the query. Malformed
// bounds are rejected with a 400 so they cannot silently widen the
// result to the full record set.
func queryFilter(c *gin.Context) (stats.Filter, bool) {
	filter := stats.Filter{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Group: c.Query("group"),
	}
	if err := filter.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return stats.Filter{}, false
	}
	return filter, true
}

// queryYearMonth reads year/month query params, defaulting to the
// current month.
func queryYearMonth(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if s := c.Query("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2100 {
			return 0, 0, false
		}
		year = y
	}
	if s := c.Query("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, false
		}
		month = time.Month(m)
	}
	return year, month, true
}

// Today godoc
// @Summary Today's order snapshot
// @Tags statistics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=stats.TodayStats}
// @Router /stats/today [get]
func Today(c *gin.Context) {
	result := stats.CalculateTodayStats(services.AppState.Records(), time.Now())
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Today stats retrieved successfully", result))
}

// Daily godoc
// @Summary Per-day aggregates
// @Tags statistics
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "Start date (yyyy-MM-dd)"
// @Param to query string false "End date (yyyy-MM-dd)"
// @Param group query string false "Group label"
// @Success 200 {object} utils.Response{data=[]stats.DailyStat}
// @Router /stats/daily [get]
func Daily(c *gin.Context) {
	filter, ok := queryFilter(c)
	if !ok {
		return
	}
	records := filter.Apply(services.AppState.Records())
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Daily stats retrieved successfully", stats.DailyStats(records)))
}

// MonthlyTrend godoc
// @Summary Trailing monthly trend
// @Tags statistics
// @Produce json
// @Security ApiKeyAuth
// @Param months query int false "Window size in months" default(6)
// @Success 200 {object} utils.Response{data=[]stats.MonthlyStat}
// @Router /stats/monthly-trend [get]
func MonthlyTrend(c *gin.Context) {
	months := stats.DefaultTrendMonths
	if s := c.Query("months"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 36 {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid months value"))
			return
		}
		months = m
	}
	trend := stats.MonthlyTrend(services.AppState.Records(), time.Now(), months)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Monthly trend retrieved successfully", trend))
}

// Distribution godoc
// @Summary Eating-ratio distribution
// @Tags statistics
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "Start date (yyyy-MM-dd)"
// @Param to query string false "End date (yyyy-MM-dd)"
// @Param group query string false "Group label"
// @Success 200 {object} utils.Response{data=[]stats.RatingBucket}
// @Router /stats/distribution [get]
func Distribution(c *gin.Context) {
	filter, ok := queryFilter(c)
	if !ok {
		return
	}
	records := filter.Apply(services.AppState.Records())
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Distribution retrieved successfully", stats.RatingDistribution(records)))
}

// Weekday godoc
// @Summary Usage pattern by weekday
// @Tags statistics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]stats.WeekdayPattern}
// @Router /stats/weekday [get]
func Weekday(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Usage pattern retrieved successfully",
		stats.UsagePattern(services.AppState.Records())))
}

// UserSummary godoc
// @Summary Per-user monthly summary
// @Tags statistics
// @Produce json
// @Security ApiKeyAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} utils.Response{data=[]stats.UserMonthlySummary}
// @Router /stats/user-summary [get]
func UserSummary(c *gin.Context) {
	year, month, ok := queryYearMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid year or month"))
		return
	}
	summaries := stats.UserMonthlySummaries(services.AppState.Records(), year, month)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User summaries retrieved successfully", summaries))
}

// GroupSummary godoc
// @Summary Per-group monthly summary
// @Tags statistics
// @Produce json
// @Security ApiKeyAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} utils.Response{data=[]stats.GroupSummary}
// @Router /stats/group-summary [get]
func GroupSummary(c *gin.Context) {
	year, month, ok := queryYearMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid year or month"))
		return
	}
	summaries := stats.GroupSummaries(services.AppState.Records(), year, month)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Group summaries retrieved successfully", summaries))
}
