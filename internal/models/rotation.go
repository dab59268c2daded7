package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rotation is an immutable audit record of a capital transfer between
// strategy buckets. to_strategy may be the combined "ETH/PAXG" target, in
// which case the amount was split evenly between both buckets.
type Rotation struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	RotationDate time.Time `gorm:"not null;index" json:"rotation_date"`

	FromStrategy string `gorm:"type:varchar(20);not null" json:"from_strategy"`
	ToStrategy   string `gorm:"type:varchar(20);not null" json:"to_strategy"`

	Amount             decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"amount"`
	PercentageOfOrigin decimal.Decimal `gorm:"type:numeric(10,4);not null" json:"percentage_of_origin"`

	TriggerCondition string `gorm:"type:text;not null" json:"trigger_condition"`
	Notes            string `gorm:"type:text" json:"notes"`
}

func (Rotation) TableName() string {
	return "rotations"
}
