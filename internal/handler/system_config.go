package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradingdesk/internal/repository"
)

type SystemConfigHandler struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *SystemConfigHandler) Register(r *gin.Engine) {
	g := r.Group("/api/system-config")
	g.GET("", h.get)
	g.PATCH("", h.patch)
}

// @Summary Current allocation limits
// @Tags system-config
// @Success 200 {object} models.SystemConfig
// @Router /api/system-config [get]
func (h *SystemConfigHandler) get(c *gin.Context) {
	item, err := h.Repo.GetSystemConfig(c.Request.Context())
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	if item == nil {
		Fail(c, http.StatusNotFound, "system config not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

type patchSystemConfigRequest struct {
	PaxgMinPercentage    *decimal.Decimal `json:"paxg_min_percentage"`
	EthMaxPercentage     *decimal.Decimal `json:"eth_max_percentage"`
	AltcoinMaxPercentage *decimal.Decimal `json:"altcoin_max_percentage"`
	MaxDrawdownAllowed   *decimal.Decimal `json:"max_drawdown_allowed"`
}

// @Summary Update allocation limits
// @Tags system-config
// @Success 200 {object} models.SystemConfig
// @Router /api/system-config [patch]
func (h *SystemConfigHandler) patch(c *gin.Context) {
	var req patchSystemConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	if req.PaxgMinPercentage == nil && req.EthMaxPercentage == nil &&
		req.AltcoinMaxPercentage == nil && req.MaxDrawdownAllowed == nil {
		Fail(c, http.StatusBadRequest, "no updatable fields supplied")
		return
	}
	for _, v := range []*decimal.Decimal{
		req.PaxgMinPercentage, req.EthMaxPercentage,
		req.AltcoinMaxPercentage, req.MaxDrawdownAllowed,
	} {
		if v != nil && (v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100))) {
			Fail(c, http.StatusBadRequest, "percentages must be between 0 and 100")
			return
		}
	}

	current, err := h.Repo.GetSystemConfig(c.Request.Context())
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	if current == nil {
		Fail(c, http.StatusNotFound, "system config not found")
		return
	}

	if req.PaxgMinPercentage != nil {
		current.PaxgMinPercentage = *req.PaxgMinPercentage
	}
	if req.EthMaxPercentage != nil {
		current.EthMaxPercentage = *req.EthMaxPercentage
	}
	if req.AltcoinMaxPercentage != nil {
		current.AltcoinMaxPercentage = *req.AltcoinMaxPercentage
	}
	if req.MaxDrawdownAllowed != nil {
		current.MaxDrawdownAllowed = *req.MaxDrawdownAllowed
	}
	current.UpdatedAt = time.Now().UTC()

	if err := h.Repo.SaveSystemConfig(c.Request.Context(), current); err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, current)
}
