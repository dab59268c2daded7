package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradingdesk/internal/models"
	"tradingdesk/internal/repository"
)

type DrawdownService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// Create opens a protection episode. While an event with end_date NULL and
// level >= the requested one exists, the request is rejected and the blocking
// event is carried back via ActiveDrawdownError.
func (s *DrawdownService) Create(ctx context.Context, item models.DrawdownEvent) (*models.DrawdownEvent, error) {
	if item.Level < 1 || item.Level > 4 {
		return nil, validationErr("level must be between 1 and 4")
	}
	if item.InitialBalance.IsZero() || item.DrawdownPercentage.IsZero() {
		return nil, validationErr("level, initial_balance and drawdown_percentage are required")
	}

	active, err := s.Repo.GetActiveDrawdownAtOrAbove(ctx, item.Level)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, &ActiveDrawdownError{Event: active}
	}

	if item.StartDate.IsZero() {
		item.StartDate = time.Now().UTC()
	}
	if err := s.Repo.InsertDrawdownEvent(ctx, &item); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Warn("drawdown protection engaged",
			zap.Int("level", item.Level),
			zap.String("drawdown_pct", item.DrawdownPercentage.String()),
		)
	}
	return &item, nil
}

// DrawdownPatch closes or annotates an event. Any subset of fields may be
// set; an empty patch is rejected.
type DrawdownPatch struct {
	EndDate            *time.Time       `json:"end_date"`
	LowestBalance      *decimal.Decimal `json:"lowest_balance"`
	ActionsTaken       *string          `json:"actions_taken"`
	RecoverySuccessful *bool            `json:"recovery_successful"`
	Notes              *string          `json:"notes"`
}

func (p DrawdownPatch) empty() bool {
	return p.EndDate == nil && p.LowestBalance == nil && p.ActionsTaken == nil &&
		p.RecoverySuccessful == nil && p.Notes == nil
}

func (s *DrawdownService) Update(ctx context.Context, id uint64, patch DrawdownPatch) (*models.DrawdownEvent, error) {
	if patch.empty() {
		return nil, validationErr("no updatable fields supplied")
	}
	current, err := s.Repo.GetDrawdownEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, notFoundErr("drawdown event %d not found", id)
	}

	updates := map[string]any{}
	if patch.EndDate != nil {
		updates["end_date"] = patch.EndDate.UTC()
	}
	if patch.LowestBalance != nil {
		updates["lowest_balance"] = *patch.LowestBalance
	}
	if patch.ActionsTaken != nil {
		updates["actions_taken"] = *patch.ActionsTaken
	}
	if patch.RecoverySuccessful != nil {
		updates["recovery_successful"] = *patch.RecoverySuccessful
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if err := s.Repo.UpdateDrawdownEvent(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.Repo.GetDrawdownEventByID(ctx, id)
}

func (s *DrawdownService) List(ctx context.Context, params repository.ListDrawdownEventsParams) ([]models.DrawdownEvent, error) {
	return s.Repo.ListDrawdownEvents(ctx, params)
}
