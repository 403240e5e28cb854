package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mokemoke0821/aoba-meal-app-sub000/config"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/store"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
)

// UpdateSettingsRequest 施設設定更新リクエスト
type UpdateSettingsRequest struct {
	FacilityName    string `json:"facilityName" binding:"required,max=100"`
	RequireMenuName bool   `json:"requireMenuName"`
}

// GetSettings godoc
// @Summary Get facility settings
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=models.AppSettings}
// @Router /admin/settings [get]
func GetSettings(c *gin.Context) {
	var s models.AppSettings
	found, err := store.Load(services.AppStore, store.KeySettings, &s)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load settings"))
		return
	}
	if !found {
		if cfg, err := config.LoadConfig(); err == nil {
			s.FacilityName = cfg.FacilityName
		}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Settings retrieved successfully", s))
}

// UpdateSettings godoc
// @Summary Replace facility settings
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateSettingsRequest true "Settings"
// @Success 200 {object} utils.Response{data=models.AppSettings}
// @Failure 400 {object} utils.Response
// @Router /admin/settings [put]
func UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	s := models.AppSettings{
		FacilityName:    req.FacilityName,
		RequireMenuName: req.RequireMenuName,
	}
	if err := store.Save(services.AppStore, store.KeySettings, s); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save settings"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Settings updated successfully", s))
}
