package menu

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
)

// SetMenuRequest 本日のメニュー設定リクエスト
type SetMenuRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"omitempty,min=0"`
	Category    string `json:"category"`
}

// GetMenu godoc
// @Summary Get the current menu
// @Tags menu
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=models.MenuItem}
// @Router /menu [get]
func GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Menu retrieved successfully", services.AppState.Menu()))
}

// SetMenu godoc
// @Summary Replace the current menu
// @Description Only one menu is held at a time; setting replaces it
// @Tags menu
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SetMenuRequest true "Menu"
// @Success 200 {object} utils.Response{data=models.MenuItem}
// @Failure 400 {object} utils.Response
// @Router /menu [put]
func SetMenu(c *gin.Context) {
	var req SetMenuRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	m := services.SetCurrentMenu(req.Name, req.Date, req.Description, req.Price, req.Category)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Menu updated successfully", m))
}
