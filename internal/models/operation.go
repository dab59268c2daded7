package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OperationStatusOpen      = "OPEN"
	OperationStatusClosed    = "CLOSED"
	OperationStatusCancelled = "CANCELLED"

	OperationTypeBuy  = "BUY"
	OperationTypeSell = "SELL"
)

// Operation is a trading position funded from one strategy bucket.
// Created OPEN (debiting position_size from the bucket); closing credits the
// bucket with position_size + profit_loss. CLOSED and CANCELLED are terminal.
type Operation struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	StrategyType  string `gorm:"type:varchar(20);not null;index" json:"strategy_type"`
	AssetName     string `gorm:"type:varchar(50);not null" json:"asset_name"`
	OperationType string `gorm:"type:varchar(10);not null;default:'BUY'" json:"operation_type"`

	EntryPrice   decimal.Decimal  `gorm:"type:numeric(30,10);not null" json:"entry_price"`
	ExitPrice    *decimal.Decimal `gorm:"type:numeric(30,10)" json:"exit_price"`
	Amount       decimal.Decimal  `gorm:"type:numeric(30,10);not null" json:"amount"`
	PositionSize decimal.Decimal  `gorm:"type:numeric(30,10);not null" json:"position_size"`

	StopLoss    *decimal.Decimal `gorm:"type:numeric(30,10)" json:"stop_loss"`
	TakeProfit1 *decimal.Decimal `gorm:"type:numeric(30,10)" json:"take_profit_1"`
	TakeProfit2 *decimal.Decimal `gorm:"type:numeric(30,10)" json:"take_profit_2"`
	TakeProfit3 *decimal.Decimal `gorm:"type:numeric(30,10)" json:"take_profit_3"`

	Status      string `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	EntryReason string `gorm:"type:text" json:"entry_reason"`
	ExitReason  string `gorm:"type:text" json:"exit_reason"`

	ProfitLoss           *decimal.Decimal `gorm:"type:numeric(30,10)" json:"profit_loss"`
	ProfitLossPercentage *decimal.Decimal `gorm:"type:numeric(20,10)" json:"profit_loss_percentage"`

	// Advisory risk evaluation recorded at creation time. Never blocks the
	// write; kept so a closed operation still shows what the rules said.
	RiskFlags datatypes.JSON `gorm:"type:json" json:"risk_flags,omitempty"`

	EntryDate time.Time  `gorm:"not null;index" json:"entry_date"`
	ExitDate  *time.Time `json:"exit_date"`
	Notes     string     `gorm:"type:text" json:"notes"`
}

func (Operation) TableName() string {
	return "operations"
}
