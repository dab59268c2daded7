package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StrategyOverall is the aggregate row covering every strategy.
const StrategyOverall = "OVERALL"

// StrategyPerformance is a per-strategy aggregate over closed operations for
// a period. Rows are rebuilt by the performance service rather than kept in
// sync on every close.
type StrategyPerformance struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	StrategyType string    `gorm:"type:varchar(20);not null;index:idx_perf_period,unique" json:"strategy_type"`
	PeriodStart  time.Time `gorm:"not null;index:idx_perf_period,unique" json:"period_start"`
	PeriodEnd    time.Time `gorm:"not null;index:idx_perf_period,unique" json:"period_end"`

	WinCount  int `gorm:"not null;default:0" json:"win_count"`
	LossCount int `gorm:"not null;default:0" json:"loss_count"`

	ProfitLoss           decimal.Decimal  `gorm:"type:numeric(30,10);not null;default:0" json:"profit_loss"`
	ProfitLossPercentage *decimal.Decimal `gorm:"type:numeric(20,10)" json:"profit_loss_percentage"`
	MaxDrawdown          *decimal.Decimal `gorm:"type:numeric(20,10)" json:"max_drawdown"`

	Notes string `gorm:"type:text" json:"notes"`
}

func (StrategyPerformance) TableName() string {
	return "strategy_performance"
}
