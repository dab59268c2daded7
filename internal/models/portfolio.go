package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket names used across portfolio, operations and rotations.
const (
	StrategyPAXG    = "PAXG"
	StrategyETH     = "ETH"
	StrategyAltcoin = "ALTCOIN"

	// StrategyETHPAXG is the combined rotation target: the credited amount
	// is split 50/50 between the ETH and PAXG buckets.
	StrategyETHPAXG = "ETH/PAXG"
)

// Portfolio is the capital distribution across strategy buckets. The latest
// row represents current state; it is created once and only updated after.
type Portfolio struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	TotalBalance      decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"total_balance"`
	PaxgBalance       decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"paxg_balance"`
	EthBalance        decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"eth_balance"`
	AltcoinBalance    decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"altcoin_balance"`
	PremercadoBalance decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"premercado_balance"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Portfolio) TableName() string {
	return "portfolio"
}
