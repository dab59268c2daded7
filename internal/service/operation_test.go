package service

import (
	"context"
	"errors"
	"testing"

	"tradingdesk/internal/config"
	"tradingdesk/internal/models"
	"tradingdesk/internal/repository"
	gormrepository "tradingdesk/internal/repository/gorm"
	"tradingdesk/internal/risk"
)

func newOperationService(store *gormrepository.Store) *OperationService {
	return &OperationService{
		Repo: store,
		Validator: &risk.Validator{Config: config.RiskConfig{
			MaxRiskPercentage:    5,
			MinRewardRatio:       2,
			AltcoinMaxOfTotalPct: 10,
		}},
	}
}

func TestOperationCreate_DebitsFundingBucket(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	svc := newOperationService(store)

	op, result, err := svc.Create(context.Background(), models.Operation{
		StrategyType: models.StrategyETH,
		AssetName:    "ETH",
		EntryPrice:   dec("1800"),
		Amount:       dec("0.1"),
		StopLoss:     decPtr("1710"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if op.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if op.Status != models.OperationStatusOpen {
		t.Fatalf("status=%q want=OPEN", op.Status)
	}
	if op.OperationType != models.OperationTypeBuy {
		t.Fatalf("operation_type=%q want=BUY", op.OperationType)
	}
	assertDec(t, op.PositionSize, "180", "position_size")
	if result == nil || !result.Valid {
		t.Fatalf("result=%+v want valid advisory result", result)
	}
	if len(op.RiskFlags) == 0 {
		t.Fatal("risk_flags must be recorded on the row")
	}

	p := currentPortfolio(t, store)
	assertDec(t, p.EthBalance, "3820", "eth_balance")
	assertDec(t, p.TotalBalance, "9820", "total_balance")
	assertDec(t, p.PaxgBalance, "4000", "paxg_balance")
}

func TestOperationCreate_AdvisoryResultNeverBlocks(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	svc := newOperationService(store)

	// Position 5400 far exceeds the 4000 ETH bucket: an error-level flag,
	// but the write still goes through.
	op, result, err := svc.Create(context.Background(), models.Operation{
		StrategyType: models.StrategyETH,
		AssetName:    "ETH",
		EntryPrice:   dec("1800"),
		Amount:       dec("3"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result == nil || result.Valid {
		t.Fatalf("result=%+v want flagged result", result)
	}
	if op.ID == 0 {
		t.Fatal("operation must be persisted despite flags")
	}
	p := currentPortfolio(t, store)
	assertDec(t, p.EthBalance, "-1400", "eth_balance")
}

func TestOperationCreate_Validation(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	svc := newOperationService(store)
	ctx := context.Background()

	cases := []models.Operation{
		{},
		{StrategyType: models.StrategyETH, AssetName: "ETH", EntryPrice: dec("1800")},
		// PAXG is a reserve bucket, not a trading strategy.
		{StrategyType: models.StrategyPAXG, AssetName: "PAXG", EntryPrice: dec("2400"), Amount: dec("1")},
	}
	for i, op := range cases {
		if _, _, err := svc.Create(ctx, op); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: err=%v want ErrValidation", i, err)
		}
	}
}

func TestOperationClose_CreditsPositionAndProfit(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	svc := newOperationService(store)
	ctx := context.Background()

	op, _, err := svc.Create(ctx, models.Operation{
		StrategyType: models.StrategyAltcoin,
		AssetName:    "LINK",
		EntryPrice:   dec("15"),
		Amount:       dec("10"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	closed, err := svc.Update(ctx, op.ID, OperationPatch{
		Status:     strPtr(models.OperationStatusClosed),
		ExitPrice:  decPtr("17"),
		ProfitLoss: decPtr("20"),
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != models.OperationStatusClosed {
		t.Fatalf("status=%q want=CLOSED", closed.Status)
	}
	if closed.ExitDate == nil {
		t.Fatal("exit_date must default to now on close")
	}

	p := currentPortfolio(t, store)
	// 2000 - 150 + (150 + 20)
	assertDec(t, p.AltcoinBalance, "2020", "altcoin_balance")
	assertDec(t, p.TotalBalance, "10020", "total_balance")
}

func TestOperationClose_OnlyFromOpen(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	svc := newOperationService(store)
	ctx := context.Background()

	op, _, err := svc.Create(ctx, models.Operation{
		StrategyType: models.StrategyETH,
		AssetName:    "ETH",
		EntryPrice:   dec("1800"),
		Amount:       dec("0.1"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(ctx, op.ID, OperationPatch{
		Status:     strPtr(models.OperationStatusClosed),
		ProfitLoss: decPtr("5"),
	}); err != nil {
		t.Fatalf("first close: %v", err)
	}

	_, err = svc.Update(ctx, op.ID, OperationPatch{
		Status:     strPtr(models.OperationStatusClosed),
		ProfitLoss: decPtr("5"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err=%v want ErrValidation", err)
	}

	p := currentPortfolio(t, store)
	// Credited exactly once: 4000 - 180 + 185.
	assertDec(t, p.EthBalance, "4005", "eth_balance")
}

func TestOperationCancel_RefundsPositionSize(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	svc := newOperationService(store)
	ctx := context.Background()

	op, _, err := svc.Create(ctx, models.Operation{
		StrategyType: models.StrategyETH,
		AssetName:    "ETH",
		EntryPrice:   dec("1800"),
		Amount:       dec("0.1"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled, err := svc.Update(ctx, op.ID, OperationPatch{
		Status:     strPtr(models.OperationStatusCancelled),
		ExitReason: strPtr("fat finger"),
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.OperationStatusCancelled {
		t.Fatalf("status=%q want=CANCELLED", cancelled.Status)
	}

	p := currentPortfolio(t, store)
	assertDec(t, p.EthBalance, "4000", "eth_balance")
	assertDec(t, p.TotalBalance, "10000", "total_balance")
}

func TestOperationUpdate_Validation(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	svc := newOperationService(store)
	ctx := context.Background()

	op, _, err := svc.Create(ctx, models.Operation{
		StrategyType: models.StrategyETH,
		AssetName:    "ETH",
		EntryPrice:   dec("1800"),
		Amount:       dec("0.1"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, op.ID, OperationPatch{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty patch: err=%v want ErrValidation", err)
	}
	if _, err := svc.Update(ctx, op.ID, OperationPatch{Status: strPtr("SETTLED")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown status: err=%v want ErrValidation", err)
	}
	if _, err := svc.Update(ctx, 9999, OperationPatch{Notes: strPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing row: err=%v want ErrNotFound", err)
	}
}

func TestOperationValidate_DoesNotPersist(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "10000", "4000", "4000", "2000")
	svc := newOperationService(store)
	ctx := context.Background()

	result, err := svc.Validate(ctx, models.Operation{
		StrategyType: models.StrategyAltcoin,
		AssetName:    "LINK",
		EntryPrice:   dec("15"),
		Amount:       dec("100"),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("result=%+v want altcoin share warning", result)
	}

	ops, err := svc.List(ctx, repository.ListOperationsParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("operations=%d want=0", len(ops))
	}
	p := currentPortfolio(t, store)
	assertDec(t, p.TotalBalance, "10000", "total_balance")
}
