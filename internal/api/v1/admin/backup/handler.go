package backup

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	backuppkg "github.com/mokemoke0821/aoba-meal-app-sub000/internal/backup"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/validation"
)

// ExportBackup godoc
// @Summary Download a full JSON backup
// @Tags admin
// @Produce application/json
// @Security ApiKeyAuth
// @Success 200 {string} string "Backup file"
// @Failure 500 {object} utils.Response
// @Router /admin/backup/export [get]
func ExportBackup(c *gin.Context) {
	data, filename, err := services.ExportBackup()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to build backup"))
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// RestoreBackup godoc
// @Summary Restore from an uploaded backup
// @Description Replaces all collections wholesale. A malformed upload leaves existing data untouched.
// @Tags admin
// @Accept application/json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 422 {object} utils.Response
// @Router /admin/backup/restore [post]
func RestoreBackup(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Empty request body"))
		return
	}

	if err := services.RestoreBackup(data); err != nil {
		switch {
		case errors.Is(err, backuppkg.ErrFormat):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, backuppkg.ErrInvalid):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to restore backup"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Backup restored successfully", nil))
}

// Diagnostics godoc
// @Summary Data-integrity report
// @Description Duplicate ids, orphaned records, stale denormalized names. Warnings never block operations.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=validation.Result}
// @Router /admin/diagnostics [get]
func Diagnostics(c *gin.Context) {
	result := validation.ValidateDataIntegrity(
		services.AppState.Users(),
		services.AppState.Records(),
		time.Now(),
	)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Integrity check completed", result))
}
