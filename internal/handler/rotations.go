package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradingdesk/internal/service"
)

type RotationHandler struct {
	Service *service.RotationService
	Logger  *zap.Logger
}

func (h *RotationHandler) Register(r *gin.Engine) {
	g := r.Group("/api/rotations")
	g.GET("", h.list)
	g.POST("", h.create)
}

// @Summary Rotation history, newest first
// @Tags rotations
// @Param limit query int false "limit (default 10)"
// @Success 200 {array} models.Rotation
// @Router /api/rotations [get]
func (h *RotationHandler) list(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context(), intQuery(c, "limit", 10))
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Rotate capital between buckets
// @Tags rotations
// @Success 201 {object} models.Rotation
// @Router /api/rotations [post]
func (h *RotationHandler) create(c *gin.Context) {
	var req service.RotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	rotation, err := h.Service.Rotate(c.Request.Context(), req)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, rotation)
}
