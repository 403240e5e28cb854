package report

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/export"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/stats"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
)

// serveCSV writes a built report as a file download.
func serveCSV(c *gin.Context, f *export.File) {
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(f.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", f.Content)
}

func handleExportError(c *gin.Context, err error) {
	if errors.Is(err, export.ErrNoData) {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to build report"))
}

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

func monthRange(year int, month time.Month) (string, string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), first.Format("2006-01")
}

// DailyReport godoc
// @Summary Download the record listing for a date range
// @Tags admin
// @Produce text/csv
// @Security ApiKeyAuth
// @Param from query string true "Start date (yyyy-MM-dd)"
// @Param to query string true "End date (yyyy-MM-dd)"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/reports/daily [get]
func DailyReport(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "from and to are required"))
		return
	}
	if err := (stats.Filter{From: from, To: to}).Validate(); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	f, err := export.DailyRecords(services.AppState.Records(), from, to)
	if err != nil {
		handleExportError(c, err)
		return
	}
	serveCSV(c, f)
}

// MonthlyReport godoc
// @Summary Download the per-user and per-group monthly aggregate
// @Tags admin
// @Produce text/csv
// @Security ApiKeyAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {string} string "CSV file"
// @Router /admin/reports/monthly [get]
func MonthlyReport(c *gin.Context) {
	year, month, ok := queryYearMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid year or month"))
		return
	}

	records := services.AppState.Records()
	_, _, period := monthRange(year, month)
	f, err := export.MonthlyReport(
		stats.UserMonthlySummaries(records, year, month),
		stats.GroupSummaries(records, year, month),
		period,
	)
	if err != nil {
		handleExportError(c, err)
		return
	}
	serveCSV(c, f)
}

// RatingReport godoc
// @Summary Download the eating-ratio analysis for a month
// @Tags admin
// @Produce text/csv
// @Security ApiKeyAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {string} string "CSV file"
// @Router /admin/reports/rating [get]
func RatingReport(c *gin.Context) {
	year, month, ok := queryYearMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid year or month"))
		return
	}

	from, to, period := monthRange(year, month)
	monthRecords := stats.Filter{From: from, To: to}.Apply(services.AppState.Records())
	trendEnd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	f, err := export.RatingAnalysis(
		monthRecords,
		stats.RatingDistribution(monthRecords),
		stats.MonthlyTrend(services.AppState.Records(), trendEnd, stats.DefaultTrendMonths),
		period,
	)
	if err != nil {
		handleExportError(c, err)
		return
	}
	serveCSV(c, f)
}

// BillingReport godoc
// @Summary Download the billing extract for a month
// @Description Paid groups only; trial users are excluded
// @Tags admin
// @Produce text/csv
// @Security ApiKeyAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {string} string "CSV file"
// @Router /admin/reports/billing [get]
func BillingReport(c *gin.Context) {
	year, month, ok := queryYearMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid year or month"))
		return
	}

	_, _, period := monthRange(year, month)
	f, err := export.Billing(stats.UserMonthlySummaries(services.AppState.Records(), year, month), period)
	if err != nil {
		handleExportError(c, err)
		return
	}
	serveCSV(c, f)
}

// RosterReport godoc
// @Summary Download the full user roster
// @Tags admin
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "CSV file"
// @Router /admin/reports/users [get]
func RosterReport(c *gin.Context) {
	f, err := export.UserRoster(services.AppState.Users())
	if err != nil {
		handleExportError(c, err)
		return
	}
	serveCSV(c, f)
}

// ComprehensiveReport godoc
// @Summary Download the multi-section comprehensive report for a month
// @Tags admin
// @Produce text/csv
// @Security ApiKeyAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {string} string "CSV file"
// @Router /admin/reports/comprehensive [get]
func ComprehensiveReport(c *gin.Context) {
	year, month, ok := queryYearMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid year or month"))
		return
	}

	from, to, period := monthRange(year, month)
	records := services.AppState.Records()
	monthRecords := stats.Filter{From: from, To: to}.Apply(records)
	trendEnd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	f, err := export.Comprehensive(
		services.AppState.Users(),
		monthRecords,
		period,
		stats.UserMonthlySummaries(records, year, month),
		stats.GroupSummaries(records, year, month),
		stats.RatingDistribution(monthRecords),
		stats.MonthlyTrend(records, trendEnd, stats.DefaultTrendMonths),
	)
	if err != nil {
		handleExportError(c, err)
		return
	}
	serveCSV(c, f)
}
