package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradingdesk/internal/models"
	"tradingdesk/internal/repository"
	"tradingdesk/internal/service"
)

type DrawdownHandler struct {
	Service *service.DrawdownService
	Logger  *zap.Logger
}

func (h *DrawdownHandler) Register(r *gin.Engine) {
	g := r.Group("/api/drawdown")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("", h.patchByBody)
	g.PATCH("/:id", h.patchByParam)
}

// @Summary List drawdown events
// @Tags drawdown
// @Param active query bool false "only events with no end_date"
// @Param limit query int false "limit (default 10)"
// @Success 200 {array} models.DrawdownEvent
// @Router /api/drawdown [get]
func (h *DrawdownHandler) list(c *gin.Context) {
	active, _ := strconv.ParseBool(c.Query("active"))
	items, err := h.Service.List(c.Request.Context(), repository.ListDrawdownEventsParams{
		ActiveOnly: active,
		Limit:      intQuery(c, "limit", 10),
	})
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Record a new drawdown event
// @Tags drawdown
// @Success 201 {object} models.DrawdownEvent
// @Router /api/drawdown [post]
func (h *DrawdownHandler) create(c *gin.Context) {
	var item models.DrawdownEvent
	if err := c.ShouldBindJSON(&item); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	created, err := h.Service.Create(c.Request.Context(), item)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type patchDrawdownRequest struct {
	ID uint64 `json:"id"`
	service.DrawdownPatch
}

// @Summary Close or annotate a drawdown event (id in body)
// @Tags drawdown
// @Success 200 {object} models.DrawdownEvent
// @Router /api/drawdown [patch]
func (h *DrawdownHandler) patchByBody(c *gin.Context) {
	var req patchDrawdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	if req.ID == 0 {
		Fail(c, http.StatusBadRequest, "event id is required")
		return
	}
	h.patch(c, req.ID, req.DrawdownPatch)
}

// @Summary Close or annotate a drawdown event
// @Tags drawdown
// @Success 200 {object} models.DrawdownEvent
// @Router /api/drawdown/{id} [patch]
func (h *DrawdownHandler) patchByParam(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var patch service.DrawdownPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	h.patch(c, id, patch)
}

func (h *DrawdownHandler) patch(c *gin.Context, id uint64, patch service.DrawdownPatch) {
	updated, err := h.Service.Update(c.Request.Context(), id, patch)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
