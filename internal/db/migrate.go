package db

import (
	"github.com/shopspring/decimal"

	"tradingdesk/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	if err := db.Gorm.AutoMigrate(
		&models.SystemConfig{},
		&models.Portfolio{},
		&models.Operation{},
		&models.Rotation{},
		&models.DrawdownEvent{},
		&models.StrategyPerformance{},
	); err != nil {
		return err
	}

	return seedDefaultConfig(db)
}

// seedDefaultConfig inserts the stock allocation limits on first run so the
// config endpoints never 404 on a fresh database.
func seedDefaultConfig(db *DB) error {
	var count int64
	if err := db.Gorm.Model(&models.SystemConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cfg := models.SystemConfig{
		PaxgMinPercentage:    decimal.NewFromInt(40),
		EthMaxPercentage:     decimal.NewFromInt(40),
		AltcoinMaxPercentage: decimal.NewFromInt(20),
		MaxDrawdownAllowed:   decimal.NewFromInt(25),
	}
	return db.Gorm.Create(&cfg).Error
}
