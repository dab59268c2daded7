package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tradingdesk/internal/models"
	"tradingdesk/internal/repository"
	"tradingdesk/internal/risk"
)

type OperationService struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	Validator *risk.Validator
}

// Create opens a position. The insert and the funding-bucket debit of
// position_size run in one transaction. The risk evaluation is advisory; it
// is recorded on the row and returned, never enforced.
func (s *OperationService) Create(ctx context.Context, op models.Operation) (*models.Operation, *risk.Result, error) {
	if op.StrategyType == "" || op.AssetName == "" || op.EntryPrice.IsZero() || op.Amount.IsZero() {
		return nil, nil, validationErr("strategy_type, asset_name, entry_price and amount are required")
	}
	if op.StrategyType != models.StrategyETH && op.StrategyType != models.StrategyAltcoin {
		return nil, nil, validationErr("strategy_type must be ETH or ALTCOIN")
	}
	if op.OperationType == "" {
		op.OperationType = models.OperationTypeBuy
	}
	op.Status = models.OperationStatusOpen
	if op.PositionSize.IsZero() {
		op.PositionSize = op.EntryPrice.Mul(op.Amount)
	}
	if op.EntryDate.IsZero() {
		op.EntryDate = time.Now().UTC()
	}

	var result *risk.Result
	if s.Validator != nil {
		portfolio, err := s.Repo.GetPortfolio(ctx)
		if err != nil {
			return nil, nil, err
		}
		r := s.Validator.Evaluate(op, portfolio)
		result = &r
		if raw, err := json.Marshal(r); err == nil {
			op.RiskFlags = datatypes.JSON(raw)
		}
	}

	portfolioSvc := &PortfolioService{Repo: s.Repo, Logger: s.Logger}
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertOperationTx(tx, &op); err != nil {
			return err
		}
		return portfolioSvc.ApplyBalanceDeltaTx(tx, op.StrategyType, op.PositionSize, ActionSubtract)
	})
	if err != nil {
		return nil, nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("operation opened",
			zap.Uint64("id", op.ID),
			zap.String("strategy", op.StrategyType),
			zap.String("asset", op.AssetName),
			zap.String("position_size", op.PositionSize.String()),
		)
	}
	return &op, result, nil
}

// OperationPatch is the update surface for an existing operation. Only the
// close/cancel fields are patchable; entry data is immutable.
type OperationPatch struct {
	ExitPrice            *decimal.Decimal `json:"exit_price"`
	Status               *string          `json:"status"`
	ExitReason           *string          `json:"exit_reason"`
	ProfitLoss           *decimal.Decimal `json:"profit_loss"`
	ProfitLossPercentage *decimal.Decimal `json:"profit_loss_percentage"`
	ExitDate             *time.Time       `json:"exit_date"`
	Notes                *string          `json:"notes"`
}

func (p OperationPatch) empty() bool {
	return p.ExitPrice == nil && p.Status == nil && p.ExitReason == nil &&
		p.ProfitLoss == nil && p.ProfitLossPercentage == nil &&
		p.ExitDate == nil && p.Notes == nil
}

// Update patches an operation. A transition to CLOSED is accepted only from
// OPEN and credits the funding bucket with position_size + profit_loss in the
// same transaction; OPEN → CANCELLED refunds position_size unchanged.
func (s *OperationService) Update(ctx context.Context, id uint64, patch OperationPatch) (*models.Operation, error) {
	if patch.empty() {
		return nil, validationErr("no updatable fields supplied")
	}
	current, err := s.Repo.GetOperationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, notFoundErr("operation %d not found", id)
	}

	closing := patch.Status != nil && *patch.Status == models.OperationStatusClosed
	cancelling := patch.Status != nil && *patch.Status == models.OperationStatusCancelled
	if (closing || cancelling) && current.Status != models.OperationStatusOpen {
		return nil, validationErr("only open operations can be closed")
	}
	if patch.Status != nil && !closing && !cancelling && *patch.Status != models.OperationStatusOpen {
		return nil, validationErr("unknown status %q", *patch.Status)
	}

	updates := map[string]any{}
	if patch.ExitPrice != nil {
		updates["exit_price"] = *patch.ExitPrice
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.ExitReason != nil {
		updates["exit_reason"] = *patch.ExitReason
	}
	if patch.ProfitLoss != nil {
		updates["profit_loss"] = *patch.ProfitLoss
	}
	if patch.ProfitLossPercentage != nil {
		updates["profit_loss_percentage"] = *patch.ProfitLossPercentage
	}
	if patch.ExitDate != nil {
		updates["exit_date"] = patch.ExitDate.UTC()
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if (closing || cancelling) && patch.ExitDate == nil {
		updates["exit_date"] = time.Now().UTC()
	}

	portfolioSvc := &PortfolioService{Repo: s.Repo, Logger: s.Logger}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpdateOperationTx(tx, id, updates); err != nil {
			return err
		}
		if closing {
			realized := current.PositionSize
			if patch.ProfitLoss != nil {
				realized = realized.Add(*patch.ProfitLoss)
			}
			return portfolioSvc.ApplyBalanceDeltaTx(tx, current.StrategyType, realized, ActionAdd)
		}
		if cancelling {
			return portfolioSvc.ApplyBalanceDeltaTx(tx, current.StrategyType, current.PositionSize, ActionAdd)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if (closing || cancelling) && s.Logger != nil {
		s.Logger.Info("operation settled",
			zap.Uint64("id", id),
			zap.String("status", *patch.Status),
		)
	}
	return s.Repo.GetOperationByID(ctx, id)
}

func (s *OperationService) Get(ctx context.Context, id uint64) (*models.Operation, error) {
	op, err := s.Repo.GetOperationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, notFoundErr("operation %d not found", id)
	}
	return op, nil
}

func (s *OperationService) List(ctx context.Context, params repository.ListOperationsParams) ([]models.Operation, error) {
	return s.Repo.ListOperations(ctx, params)
}

// Validate runs the risk rules against a proposal without persisting
// anything, so the caller can preview the advisory result.
func (s *OperationService) Validate(ctx context.Context, op models.Operation) (*risk.Result, error) {
	if s.Validator == nil {
		return nil, validationErr("risk validation unavailable")
	}
	if op.PositionSize.IsZero() {
		op.PositionSize = op.EntryPrice.Mul(op.Amount)
	}
	portfolio, err := s.Repo.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	r := s.Validator.Evaluate(op, portfolio)
	return &r, nil
}
