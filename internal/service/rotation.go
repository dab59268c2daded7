package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tradingdesk/internal/models"
	"tradingdesk/internal/repository"
)

type RotationService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// RotateRequest moves a pre-computed amount between buckets. The caller
// derives amount as (from_balance × percentage) / 100; the service does not
// check sufficiency, so a bucket may legitimately go negative.
type RotateRequest struct {
	FromStrategy       string          `json:"from_strategy"`
	ToStrategy         string          `json:"to_strategy"`
	Amount             decimal.Decimal `json:"amount"`
	PercentageOfOrigin decimal.Decimal `json:"percentage_of_origin"`
	TriggerCondition   string          `json:"trigger_condition"`
	Notes              string          `json:"notes"`
}

// Rotate records the immutable history entry and transfers the balances in a
// single transaction, so the audit row and its balance effect cannot diverge.
func (s *RotationService) Rotate(ctx context.Context, req RotateRequest) (*models.Rotation, error) {
	if req.FromStrategy == "" || req.ToStrategy == "" || req.Amount.IsZero() || req.PercentageOfOrigin.IsZero() {
		return nil, validationErr("from_strategy, to_strategy, amount and percentage_of_origin are required")
	}
	if !isRotationSource(req.FromStrategy) {
		return nil, validationErr("unknown source bucket %q", req.FromStrategy)
	}
	if !isRotationTarget(req.ToStrategy) {
		return nil, validationErr("unknown target bucket %q", req.ToStrategy)
	}

	rotation := models.Rotation{
		RotationDate:       time.Now().UTC(),
		FromStrategy:       req.FromStrategy,
		ToStrategy:         req.ToStrategy,
		Amount:             req.Amount,
		PercentageOfOrigin: req.PercentageOfOrigin,
		TriggerCondition:   req.TriggerCondition,
		Notes:              req.Notes,
	}

	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		p, err := s.Repo.GetPortfolioTx(tx)
		if err != nil {
			return err
		}
		if p == nil {
			return notFoundErr("portfolio not initialized")
		}
		if err := s.Repo.InsertRotationTx(tx, &rotation); err != nil {
			return err
		}

		addToBucket(p, req.FromStrategy, req.Amount.Neg())
		if req.ToStrategy == models.StrategyETHPAXG {
			half := req.Amount.Div(decimal.NewFromInt(2))
			addToBucket(p, models.StrategyETH, half)
			addToBucket(p, models.StrategyPAXG, req.Amount.Sub(half))
		} else {
			addToBucket(p, req.ToStrategy, req.Amount)
		}
		p.UpdatedAt = rotation.RotationDate

		return s.Repo.SavePortfolioTx(tx, p)
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("rotation recorded",
			zap.String("from", rotation.FromStrategy),
			zap.String("to", rotation.ToStrategy),
			zap.String("amount", rotation.Amount.String()),
		)
	}
	return &rotation, nil
}

func (s *RotationService) List(ctx context.Context, limit int) ([]models.Rotation, error) {
	return s.Repo.ListRotations(ctx, limit)
}

func addToBucket(p *models.Portfolio, bucket string, delta decimal.Decimal) {
	switch bucket {
	case models.StrategyPAXG:
		p.PaxgBalance = p.PaxgBalance.Add(delta)
	case models.StrategyETH:
		p.EthBalance = p.EthBalance.Add(delta)
	case models.StrategyAltcoin:
		p.AltcoinBalance = p.AltcoinBalance.Add(delta)
	}
}

func isRotationSource(v string) bool {
	return v == models.StrategyPAXG || v == models.StrategyETH || v == models.StrategyAltcoin
}

func isRotationTarget(v string) bool {
	return isRotationSource(v) || v == models.StrategyETHPAXG
}
