package user

import (
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
)

// ListUsers godoc
// @Summary List all users
// @Description Get the full roster including inactive users. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=UserListResponse}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/users [get]
func ListUsers(c *gin.Context) {
	users := services.AppState.Users()
	sort.Slice(users, func(i, j int) bool {
		if users[i].Group != users[j].Group {
			return users[i].Group < users[j].Group
		}
		return users[i].DisplayNumber < users[j].DisplayNumber
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", UserListResponse{
		Users: users,
		Total: len(users),
	}))
}

// CreateUser godoc
// @Summary Register a user
// @Description Register a facility user. Price defaults to the group's price when omitted.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateUserRequest true "User"
// @Success 201 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Router /admin/users [post]
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	price := -1
	if req.Price != nil {
		price = *req.Price
	}

	u, err := services.CreateUser(req.Name, req.Group, price, req.TrialUser, req.Notes)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("User created successfully", u))
}

// UpdateUser godoc
// @Summary Update a user
// @Description Update roster fields. Historical meal records are never rewritten.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param body body UpdateUserRequest true "Fields to update"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/users/{id} [patch]
func UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	id := c.Param("id")
	var current *models.User
	for _, u := range services.AppState.Users() {
		if u.ID == id {
			v := u
			current = &v
			break
		}
	}
	if current == nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		return
	}

	updated := *current
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Group != nil {
		updated.Group = *req.Group
	}
	if req.Price != nil {
		updated.Price = *req.Price
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	if req.TrialUser != nil {
		updated.TrialUser = *req.TrialUser
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.DisplayNumber != nil {
		updated.DisplayNumber = *req.DisplayNumber
	}

	u, err := services.UpdateUser(updated)
	if err != nil {
		if errors.Is(err, services.ErrUserInvalid) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update user"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User updated successfully", u))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Remove a user from the roster. Their meal records stay as orphans.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/users/{id} [delete]
func DeleteUser(c *gin.Context) {
	if err := services.AppState.RemoveUser(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User deleted successfully", nil))
}

// BulkAction godoc
// @Summary Bulk roster action
// @Description Activate, deactivate, delete or change the group of several users at once
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body BulkActionRequest true "Action"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /admin/users/bulk [post]
func BulkAction(c *gin.Context) {
	var req BulkActionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	affected, err := services.BulkAction(req.IDs, req.Action, req.Group)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bulk action applied", gin.H{"affected": affected}))
}

// ImportRoster godoc
// @Summary Import users from CSV
// @Description Append users parsed from an uploaded roster CSV (name, group, price, created-date, active-status)
// @Tags admin
// @Accept text/csv
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=ImportResponse}
// @Failure 400 {object} utils.Response
// @Router /admin/users/import [post]
func ImportRoster(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Empty request body"))
		return
	}

	imported, warnings, err := services.ImportRoster(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}
	if warnings == nil {
		warnings = []string{}
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Roster imported successfully", ImportResponse{
		Imported: imported,
		Warnings: warnings,
	}))
}
