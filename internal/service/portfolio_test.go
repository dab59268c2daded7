package service

import (
	"context"
	"errors"
	"testing"

	"tradingdesk/internal/models"
)

func TestPortfolioGet_NotInitialized(t *testing.T) {
	svc := &PortfolioService{Repo: newTestStore(t)}
	_, err := svc.Get(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestPortfolioInit_SecondCallRejected(t *testing.T) {
	store := newTestStore(t)
	svc := &PortfolioService{Repo: store}
	ctx := context.Background()

	first, err := svc.Init(ctx, models.Portfolio{
		TotalBalance:   dec("93"),
		PaxgBalance:    dec("42"),
		EthBalance:     dec("33"),
		AltcoinBalance: dec("18"),
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned id")
	}

	_, err = svc.Init(ctx, models.Portfolio{TotalBalance: dec("1")})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err=%v want ErrValidation", err)
	}

	p := currentPortfolio(t, store)
	assertDec(t, p.TotalBalance, "93", "total_balance")
	if p.ID != first.ID {
		t.Fatalf("id=%d want=%d (row must be untouched)", p.ID, first.ID)
	}
}

func TestPortfolioGet_Distribution(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "93", "42", "33", "18")
	svc := &PortfolioService{Repo: store}

	view, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Distribution) != 3 {
		t.Fatalf("buckets=%d want=3 (zero premercado omitted)", len(view.Distribution))
	}
	want := map[string]int64{"PAXG": 45, "ETH": 35, "Altcoins": 19}
	for _, share := range view.Distribution {
		if share.Percentage != want[share.Name] {
			t.Fatalf("%s percentage=%d want=%d", share.Name, share.Percentage, want[share.Name])
		}
	}
}

func TestPortfolioPatch_EmptyRejected(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "100", "40", "40", "20")
	svc := &PortfolioService{Repo: store}

	_, err := svc.Patch(context.Background(), PortfolioPatch{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err=%v want ErrValidation", err)
	}
}

func TestPortfolioPatch_PartialUpdate(t *testing.T) {
	store := newTestStore(t)
	seedPortfolio(t, store, "100", "40", "40", "20")
	svc := &PortfolioService{Repo: store}

	updated, err := svc.Patch(context.Background(), PortfolioPatch{
		EthBalance: decPtr("55"),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	assertDec(t, updated.EthBalance, "55", "eth_balance")
	assertDec(t, updated.PaxgBalance, "40", "paxg_balance")
	assertDec(t, updated.TotalBalance, "100", "total_balance")
}
