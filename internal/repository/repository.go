package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradingdesk/internal/models"
)

// Repository is the persistence surface of the desk. The store exclusively
// owns all durable state; services re-read inside a transaction rather than
// caching rows.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// System config (latest row wins).
	GetSystemConfig(ctx context.Context) (*models.SystemConfig, error)
	SaveSystemConfig(ctx context.Context, item *models.SystemConfig) error

	// Portfolio (latest row wins; created once, then only updated).
	GetPortfolio(ctx context.Context) (*models.Portfolio, error)
	GetPortfolioTx(tx *gorm.DB) (*models.Portfolio, error)
	CreatePortfolio(ctx context.Context, item *models.Portfolio) error
	SavePortfolio(ctx context.Context, item *models.Portfolio) error
	SavePortfolioTx(tx *gorm.DB, item *models.Portfolio) error

	// Operations.
	InsertOperationTx(tx *gorm.DB, item *models.Operation) error
	GetOperationByID(ctx context.Context, id uint64) (*models.Operation, error)
	ListOperations(ctx context.Context, params ListOperationsParams) ([]models.Operation, error)
	UpdateOperationTx(tx *gorm.DB, id uint64, updates map[string]any) error
	ListClosedOperationsBetween(ctx context.Context, strategy string, since, until time.Time) ([]models.Operation, error)

	// Rotations (insert-only audit log).
	InsertRotationTx(tx *gorm.DB, item *models.Rotation) error
	ListRotations(ctx context.Context, limit int) ([]models.Rotation, error)

	// Drawdown events.
	InsertDrawdownEvent(ctx context.Context, item *models.DrawdownEvent) error
	GetDrawdownEventByID(ctx context.Context, id uint64) (*models.DrawdownEvent, error)
	GetActiveDrawdownAtOrAbove(ctx context.Context, level int) (*models.DrawdownEvent, error)
	ListDrawdownEvents(ctx context.Context, params ListDrawdownEventsParams) ([]models.DrawdownEvent, error)
	UpdateDrawdownEvent(ctx context.Context, id uint64, updates map[string]any) error

	// Strategy performance aggregates.
	UpsertStrategyPerformance(ctx context.Context, item *models.StrategyPerformance) error
	ListStrategyPerformance(ctx context.Context, strategy *string) ([]models.StrategyPerformance, error)
}

type ListOperationsParams struct {
	Status  *string
	SortBy  string
	SortDir string
	Limit   int
}

type ListDrawdownEventsParams struct {
	ActiveOnly bool
	Limit      int
}
