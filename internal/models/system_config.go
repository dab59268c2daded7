package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemConfig holds the capital-allocation limits of the strategy.
// The latest row is authoritative; rows are updated in place, never deleted.
type SystemConfig struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	PaxgMinPercentage    decimal.Decimal `gorm:"type:numeric(10,4);not null;default:40" json:"paxg_min_percentage"`
	EthMaxPercentage     decimal.Decimal `gorm:"type:numeric(10,4);not null;default:40" json:"eth_max_percentage"`
	AltcoinMaxPercentage decimal.Decimal `gorm:"type:numeric(10,4);not null;default:20" json:"altcoin_max_percentage"`
	MaxDrawdownAllowed   decimal.Decimal `gorm:"type:numeric(10,4);not null;default:25" json:"max_drawdown_allowed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemConfig) TableName() string {
	return "system_config"
}
