package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DrawdownEvent records a capital-protection episode. An event is active
// while end_date is NULL; at most one active event per level is intended,
// and a new event is rejected while an equal-or-higher-level one is active.
type DrawdownEvent struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Level     int        `gorm:"not null;index" json:"level"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `gorm:"index" json:"end_date"`

	InitialBalance     decimal.Decimal  `gorm:"type:numeric(30,10);not null" json:"initial_balance"`
	LowestBalance      *decimal.Decimal `gorm:"type:numeric(30,10)" json:"lowest_balance"`
	DrawdownPercentage decimal.Decimal  `gorm:"type:numeric(10,4);not null" json:"drawdown_percentage"`

	ActionsTaken        string `gorm:"type:text" json:"actions_taken"`
	RecoverySuccessful  *bool  `json:"recovery_successful"`
	Notes               string `gorm:"type:text" json:"notes"`
}

func (DrawdownEvent) TableName() string {
	return "drawdown_events"
}
