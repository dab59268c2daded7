package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradingdesk/internal/models"
	"tradingdesk/internal/service"
)

type PortfolioHandler struct {
	Service *service.PortfolioService
	Logger  *zap.Logger
}

func (h *PortfolioHandler) Register(r *gin.Engine) {
	g := r.Group("/api/portfolio")
	g.GET("", h.get)
	g.POST("/init", h.init)
	g.PATCH("", h.patch)
}

// @Summary Current portfolio with bucket distribution
// @Tags portfolio
// @Success 200 {object} service.PortfolioView
// @Router /api/portfolio [get]
func (h *PortfolioHandler) get(c *gin.Context) {
	view, err := h.Service.Get(c.Request.Context())
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type initPortfolioRequest struct {
	TotalBalance      *decimal.Decimal `json:"total_balance"`
	PaxgBalance       *decimal.Decimal `json:"paxg_balance"`
	EthBalance        *decimal.Decimal `json:"eth_balance"`
	AltcoinBalance    *decimal.Decimal `json:"altcoin_balance"`
	PremercadoBalance *decimal.Decimal `json:"premercado_balance"`
}

// @Summary Initialize the portfolio (fails if one exists)
// @Tags portfolio
// @Success 201 {object} models.Portfolio
// @Router /api/portfolio/init [post]
func (h *PortfolioHandler) init(c *gin.Context) {
	var req initPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	item := models.Portfolio{
		TotalBalance:      orDefault(req.TotalBalance, 93),
		PaxgBalance:       orDefault(req.PaxgBalance, 42),
		EthBalance:        orDefault(req.EthBalance, 33),
		AltcoinBalance:    orDefault(req.AltcoinBalance, 18),
		PremercadoBalance: orDefault(req.PremercadoBalance, 0),
	}
	created, err := h.Service.Init(c.Request.Context(), item)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Manually correct portfolio balances
// @Tags portfolio
// @Success 200 {object} models.Portfolio
// @Router /api/portfolio [patch]
func (h *PortfolioHandler) patch(c *gin.Context) {
	var patch service.PortfolioPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	updated, err := h.Service.Patch(c.Request.Context(), patch)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func orDefault(v *decimal.Decimal, def int64) decimal.Decimal {
	if v != nil {
		return *v
	}
	return decimal.NewFromInt(def)
}
