package record

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/stats"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
)

// ListRecords godoc
// @Summary List meal records
// @Description Get meal records, optionally filtered by date range and group
// @Tags records
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "Start date (yyyy-MM-dd)"
// @Param to query string false "End date (yyyy-MM-dd)"
// @Param group query string false "Group label"
// @Success 200 {object} utils.Response{data=RecordListResponse}
// @Router /records [get]
func ListRecords(c *gin.Context) {
	filter := stats.Filter{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Group: c.Query("group"),
	}
	if err := filter.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}
	records := filter.Apply(services.AppState.Records())

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Records retrieved successfully", RecordListResponse{
		Records: records,
		Total:   len(records),
	}))
}

// ListActiveUsers godoc
// @Summary List active users for the order screen
// @Description Active users grouped and sorted by display number
// @Tags records
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.User}
// @Router /users [get]
func ListActiveUsers(c *gin.Context) {
	var active []models.User
	for _, u := range services.AppState.Users() {
		if u.IsActive {
			active = append(active, u)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].Group != active[j].Group {
			return active[i].Group < active[j].Group
		}
		return active[i].DisplayNumber < active[j].DisplayNumber
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", active))
}

// PlaceOrder godoc
// @Summary Place a meal order
// @Description Record a meal order for a user; at most one order per user per day
// @Tags records
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body PlaceOrderRequest true "Order"
// @Success 201 {object} utils.Response{data=models.MealRecord}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /records [post]
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	rec, err := services.PlaceOrder(req.UserID, req.Date, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateOrder):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		case errors.Is(err, services.ErrUserNotOrdering):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Order placed successfully", rec))
}

// RateRecord godoc
// @Summary Record an eating ratio
// @Description Set the eating ratio (1-10) of an existing record
// @Tags records
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Record ID"
// @Param body body RateRequest true "Rating"
// @Success 200 {object} utils.Response{data=models.MealRecord}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /records/{id}/rating [patch]
func RateRecord(c *gin.Context) {
	var req RateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	rec, err := services.RateRecord(c.Param("id"), req.Ratio, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rating recorded successfully", rec))
}
