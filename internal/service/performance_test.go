package service

import (
	"context"
	"testing"
	"time"

	"tradingdesk/internal/models"
)

func closeOperationAt(t *testing.T, svc *OperationService, id uint64, pl string, exit time.Time) {
	t.Helper()
	_, err := svc.Update(context.Background(), id, OperationPatch{
		Status:     strPtr(models.OperationStatusClosed),
		ProfitLoss: decPtr(pl),
		ExitDate:   timePtr(exit),
	})
	if err != nil {
		t.Fatalf("close %d: %v", id, err)
	}
}

func openOperation(t *testing.T, svc *OperationService, strategy, asset, price, amount string) uint64 {
	t.Helper()
	op, _, err := svc.Create(context.Background(), models.Operation{
		StrategyType: strategy,
		AssetName:    asset,
		EntryPrice:   dec(price),
		Amount:       dec(amount),
	})
	if err != nil {
		t.Fatalf("open %s: %v", asset, err)
	}
	return op.ID
}

func TestRebuild_AggregatesPerStrategyAndMonth(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	ops := newOperationService(store)
	perf := &PerformanceService{Repo: store}
	ctx := context.Background()

	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	eth1 := openOperation(t, ops, models.StrategyETH, "ETH", "1800", "0.1")
	eth2 := openOperation(t, ops, models.StrategyETH, "ETH", "1900", "0.1")
	alt := openOperation(t, ops, models.StrategyAltcoin, "LINK", "15", "10")

	closeOperationAt(t, ops, eth1, "50", march)
	closeOperationAt(t, ops, eth2, "-20", march.Add(24*time.Hour))
	closeOperationAt(t, ops, alt, "30", march.Add(48*time.Hour))

	written, err := perf.Rebuild(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if written != 3 {
		t.Fatalf("rows=%d want=3 (ETH, ALTCOIN, OVERALL)", written)
	}

	rows, err := perf.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	byStrategy := map[string]models.StrategyPerformance{}
	for _, row := range rows {
		byStrategy[row.StrategyType] = row
	}

	eth := byStrategy[models.StrategyETH]
	if eth.WinCount != 1 || eth.LossCount != 1 {
		t.Fatalf("eth wins=%d losses=%d want 1/1", eth.WinCount, eth.LossCount)
	}
	assertDec(t, eth.ProfitLoss, "30", "eth profit_loss")
	if eth.MaxDrawdown == nil {
		t.Fatal("eth max_drawdown missing")
	}
	// Cumulative +50 then -20: peak 50, trough 30.
	assertDec(t, *eth.MaxDrawdown, "20", "eth max_drawdown")

	overall := byStrategy[models.StrategyOverall]
	if overall.WinCount != 2 || overall.LossCount != 1 {
		t.Fatalf("overall wins=%d losses=%d want 2/1", overall.WinCount, overall.LossCount)
	}
	assertDec(t, overall.ProfitLoss, "60", "overall profit_loss")

	if !eth.PeriodStart.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("period_start=%s want 2026-03-01", eth.PeriodStart)
	}
}

func TestRebuild_Idempotent(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	ops := newOperationService(store)
	perf := &PerformanceService{Repo: store}
	ctx := context.Background()

	id := openOperation(t, ops, models.StrategyETH, "ETH", "1800", "0.1")
	closeOperationAt(t, ops, id, "10", time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC))

	if _, err := perf.Rebuild(ctx, time.Time{}, time.Time{}); err != nil {
		t.Fatalf("first rebuild: %v", err)
	}
	if _, err := perf.Rebuild(ctx, time.Time{}, time.Time{}); err != nil {
		t.Fatalf("second rebuild: %v", err)
	}

	rows, err := perf.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// One month, one traded strategy: ETH + OVERALL.
	if len(rows) != 2 {
		t.Fatalf("rows=%d want=2 after repeated rebuilds", len(rows))
	}
}

func TestRebuild_NoClosedOperations(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	perf := &PerformanceService{Repo: store}

	written, err := perf.Rebuild(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if written != 0 {
		t.Fatalf("rows=%d want=0", written)
	}
}

func TestRebuild_FiltersByStrategyOnList(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	ops := newOperationService(store)
	perf := &PerformanceService{Repo: store}
	ctx := context.Background()

	id := openOperation(t, ops, models.StrategyAltcoin, "LINK", "15", "10")
	closeOperationAt(t, ops, id, "5", time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC))
	if _, err := perf.Rebuild(ctx, time.Time{}, time.Time{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	strategy := models.StrategyAltcoin
	rows, err := perf.List(ctx, &strategy)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].StrategyType != models.StrategyAltcoin {
		t.Fatalf("rows=%+v want one ALTCOIN row", rows)
	}
}
