package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradingdesk/internal/config"
	"tradingdesk/internal/db"
	"tradingdesk/internal/models"
	gormrepository "tradingdesk/internal/repository/gorm"
)

// newTestStore opens a throwaway in-memory database. A single pooled
// connection keeps the :memory: database alive for the test's lifetime.
func newTestStore(t *testing.T) *gormrepository.Store {
	t.Helper()
	conn, err := db.Open(config.DBConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close(conn) })
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gormrepository.New(conn.Gorm)
}

func seedPortfolio(t *testing.T, store *gormrepository.Store, total, paxg, eth, altcoin string) *models.Portfolio {
	t.Helper()
	p := &models.Portfolio{
		TotalBalance:   dec(total),
		PaxgBalance:    dec(paxg),
		EthBalance:     dec(eth),
		AltcoinBalance: dec(altcoin),
	}
	if err := store.CreatePortfolio(context.Background(), p); err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}
	return p
}

func currentPortfolio(t *testing.T, store *gormrepository.Store) *models.Portfolio {
	t.Helper()
	p, err := store.GetPortfolio(context.Background())
	if err != nil {
		t.Fatalf("get portfolio: %v", err)
	}
	if p == nil {
		t.Fatal("portfolio missing")
	}
	return p
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func assertDec(t *testing.T, got decimal.Decimal, want string, field string) {
	t.Helper()
	if got.Cmp(dec(want)) != 0 {
		t.Fatalf("%s=%s want=%s", field, got, want)
	}
}
