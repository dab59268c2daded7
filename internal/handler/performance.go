package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradingdesk/internal/service"
)

type PerformanceHandler struct {
	Service *service.PerformanceService
	Logger  *zap.Logger
}

func (h *PerformanceHandler) Register(r *gin.Engine) {
	g := r.Group("/api/performance")
	g.GET("", h.list)
	g.POST("/rebuild", h.rebuild)
}

// @Summary Per-strategy monthly performance aggregates
// @Tags performance
// @Param strategy query string false "ETH|ALTCOIN|OVERALL"
// @Success 200 {array} models.StrategyPerformance
// @Router /api/performance [get]
func (h *PerformanceHandler) list(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context(), strQueryPtr(c, "strategy"))
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Rebuild performance aggregates from closed operations
// @Tags performance
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Success 200 {object} map[string]int
// @Router /api/performance/rebuild [post]
func (h *PerformanceHandler) rebuild(c *gin.Context) {
	var since, until time.Time
	if raw := strings.TrimSpace(c.Query("since")); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			Fail(c, http.StatusBadRequest, "invalid since")
			return
		}
		since = ts.UTC()
	}
	if raw := strings.TrimSpace(c.Query("until")); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			Fail(c, http.StatusBadRequest, "invalid until")
			return
		}
		until = ts.UTC()
	}
	rows, err := h.Service.Rebuild(c.Request.Context(), since, until)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
