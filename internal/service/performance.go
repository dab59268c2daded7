package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradingdesk/internal/models"
	"tradingdesk/internal/repository"
)

// PerformanceService rebuilds the per-strategy aggregates from closed
// operations. Rows are recomputed per calendar month, so repeated rebuilds
// are idempotent.
type PerformanceService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// Rebuild recomputes strategy_performance rows for every month intersecting
// [since, until). A zero since covers everything; a zero until means now.
// Returns the number of rows written.
func (s *PerformanceService) Rebuild(ctx context.Context, since, until time.Time) (int, error) {
	if until.IsZero() {
		until = time.Now().UTC()
	}
	if since.IsZero() {
		since = time.Unix(0, 0).UTC()
	}

	all, err := s.Repo.ListClosedOperationsBetween(ctx, "", since, until)
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, nil
	}

	written := 0
	for _, month := range monthsCovered(all) {
		monthEnd := month.AddDate(0, 1, 0)
		for _, strategy := range []string{models.StrategyETH, models.StrategyAltcoin, models.StrategyOverall} {
			row := aggregate(all, strategy, month, monthEnd)
			if row == nil {
				continue
			}
			if err := s.Repo.UpsertStrategyPerformance(ctx, row); err != nil {
				return written, err
			}
			written++
		}
	}

	if s.Logger != nil {
		s.Logger.Info("strategy performance rebuilt",
			zap.Int("rows", written),
			zap.Int("operations", len(all)),
		)
	}
	return written, nil
}

func (s *PerformanceService) List(ctx context.Context, strategy *string) ([]models.StrategyPerformance, error) {
	return s.Repo.ListStrategyPerformance(ctx, strategy)
}

func monthsCovered(ops []models.Operation) []time.Time {
	seen := map[time.Time]struct{}{}
	var out []time.Time
	for _, op := range ops {
		if op.ExitDate == nil {
			continue
		}
		t := op.ExitDate.UTC()
		month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		if _, ok := seen[month]; ok {
			continue
		}
		seen[month] = struct{}{}
		out = append(out, month)
	}
	return out
}

// aggregate builds one performance row, or nil when the strategy had no
// closed operations in the period. An operation with no recorded profit_loss
// counts as a loss of zero.
func aggregate(ops []models.Operation, strategy string, start, end time.Time) *models.StrategyPerformance {
	row := models.StrategyPerformance{
		StrategyType: strategy,
		PeriodStart:  start,
		PeriodEnd:    end,
	}

	totalSize := decimal.Zero
	cumulative := decimal.Zero
	peak := decimal.Zero
	maxDrawdown := decimal.Zero
	matched := 0

	for _, op := range ops {
		if op.ExitDate == nil || op.ExitDate.Before(start) || !op.ExitDate.Before(end) {
			continue
		}
		if strategy != models.StrategyOverall && op.StrategyType != strategy {
			continue
		}
		matched++

		pl := decimal.Zero
		if op.ProfitLoss != nil {
			pl = *op.ProfitLoss
		}
		if pl.IsPositive() {
			row.WinCount++
		} else {
			row.LossCount++
		}
		row.ProfitLoss = row.ProfitLoss.Add(pl)
		totalSize = totalSize.Add(op.PositionSize)

		cumulative = cumulative.Add(pl)
		if cumulative.GreaterThan(peak) {
			peak = cumulative
		}
		if dd := peak.Sub(cumulative); dd.GreaterThan(maxDrawdown) {
			maxDrawdown = dd
		}
	}
	if matched == 0 {
		return nil
	}

	if totalSize.IsPositive() {
		pct := row.ProfitLoss.Div(totalSize).Mul(decimal.NewFromInt(100))
		row.ProfitLossPercentage = &pct
	}
	if maxDrawdown.IsPositive() {
		row.MaxDrawdown = &maxDrawdown
	}
	return &row
}
