package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradingdesk/internal/models"
	"tradingdesk/internal/repository"
	"tradingdesk/internal/service"
)

type OperationHandler struct {
	Service *service.OperationService
	Logger  *zap.Logger
}

func (h *OperationHandler) Register(r *gin.Engine) {
	g := r.Group("/api/operations")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("", h.patchByBody)
	g.POST("/validate", h.validate)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.patchByParam)
}

// @Summary List operations
// @Tags operations
// @Param status query string false "OPEN|CLOSED|CANCELLED"
// @Param sortBy query string false "entry_date|exit_date|profit_loss|position_size"
// @Param sortDir query string false "asc|desc"
// @Param limit query int false "limit"
// @Success 200 {array} models.Operation
// @Router /api/operations [get]
func (h *OperationHandler) list(c *gin.Context) {
	sortBy := parseOrder(c.Query("sortBy"), map[string]string{
		"entry_date":    "entry_date",
		"exit_date":     "exit_date",
		"profit_loss":   "profit_loss",
		"position_size": "position_size",
	})
	params := repository.ListOperationsParams{
		Status:  strQueryPtr(c, "status"),
		SortBy:  sortBy,
		SortDir: strings.ToLower(c.Query("sortDir")),
		Limit:   intQuery(c, "limit", 0),
	}
	items, err := h.Service.List(c.Request.Context(), params)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Open a new operation
// @Tags operations
// @Success 201 {object} models.Operation
// @Router /api/operations [post]
func (h *OperationHandler) create(c *gin.Context) {
	var op models.Operation
	if err := c.ShouldBindJSON(&op); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	created, _, err := h.Service.Create(c.Request.Context(), op)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Preview the risk evaluation for a proposed operation
// @Tags operations
// @Success 200 {object} risk.Result
// @Router /api/operations/validate [post]
func (h *OperationHandler) validate(c *gin.Context) {
	var op models.Operation
	if err := c.ShouldBindJSON(&op); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	result, err := h.Service.Validate(c.Request.Context(), op)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get one operation
// @Tags operations
// @Success 200 {object} models.Operation
// @Router /api/operations/{id} [get]
func (h *OperationHandler) get(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	item, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type patchOperationRequest struct {
	ID uint64 `json:"id"`
	service.OperationPatch
}

// @Summary Update or close an operation (id in body)
// @Tags operations
// @Success 200 {object} models.Operation
// @Router /api/operations [patch]
func (h *OperationHandler) patchByBody(c *gin.Context) {
	var req patchOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	if req.ID == 0 {
		Fail(c, http.StatusBadRequest, "operation id is required")
		return
	}
	h.patch(c, req.ID, req.OperationPatch)
}

// @Summary Update or close an operation
// @Tags operations
// @Success 200 {object} models.Operation
// @Router /api/operations/{id} [patch]
func (h *OperationHandler) patchByParam(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var patch service.OperationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	h.patch(c, id, patch)
}

func (h *OperationHandler) patch(c *gin.Context, id uint64, patch service.OperationPatch) {
	updated, err := h.Service.Update(c.Request.Context(), id, patch)
	if err != nil {
		FailFromService(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func uint64Param(c *gin.Context, key string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(c.Param(key)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseOrder whitelists sort columns before they reach SQL.
func parseOrder(value string, allow map[string]string) string {
	key := strings.TrimSpace(strings.ToLower(value))
	if key == "" {
		return ""
	}
	if mapped, ok := allow[key]; ok {
		return mapped
	}
	return ""
}
