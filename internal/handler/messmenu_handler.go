package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/internal/service"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/response"
)

// MessMenuHandler exposes the weekly mess menu.
type MessMenuHandler struct {
	menu *service.MessMenuService
}

// NewMessMenuHandler builds a MessMenuHandler.
func NewMessMenuHandler(menu *service.MessMenuService) *MessMenuHandler {
	return &MessMenuHandler{menu: menu}
}

// Get godoc
// @Summary Fetch the weekly mess menu
// @Tags mess-menu
// @Produce json
// @Success 200 {object} models.MessMenu
// @Security BearerAuth
// @Router /mess-menu [get]
func (h *MessMenuHandler) Get(c *gin.Context) {
	menu, err := h.menu.Get(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, menu)
}

// UpdateDay godoc
// @Summary Update one weekday's menu
// @Tags mess-menu
// @Accept json
// @Produce json
// @Param request body models.UpdateMessMenuRequest true "Day menu"
// @Success 200 {object} models.MessMenu
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /mess-menu [put]
func (h *MessMenuHandler) UpdateDay(c *gin.Context) {
	var req models.UpdateMessMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(appErrors.ErrValidation, err))
		return
	}
	menu, err := h.menu.UpdateDay(c, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, menu)
}
