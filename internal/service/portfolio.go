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

type BalanceAction string

const (
	ActionAdd      BalanceAction = "add"
	ActionSubtract BalanceAction = "subtract"
)

// BucketShare is one slice of the distribution returned with the portfolio.
type BucketShare struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage int64           `json:"percentage"`
}

// PortfolioView is the latest portfolio row plus its percentage distribution.
type PortfolioView struct {
	models.Portfolio
	Distribution []BucketShare `json:"distribution"`
}

type PortfolioService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *PortfolioService) Get(ctx context.Context) (*PortfolioView, error) {
	p, err := s.Repo.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFoundErr("portfolio not initialized")
	}
	return &PortfolioView{Portfolio: *p, Distribution: distribution(p)}, nil
}

// Init creates the one and only portfolio row. A second call fails without
// touching the existing row.
func (s *PortfolioService) Init(ctx context.Context, item models.Portfolio) (*models.Portfolio, error) {
	existing, err := s.Repo.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validationErr("portfolio already initialized")
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.Repo.CreatePortfolio(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// PortfolioPatch carries a manual balance correction. Only non-nil fields are
// applied.
type PortfolioPatch struct {
	TotalBalance      *decimal.Decimal `json:"total_balance"`
	PaxgBalance       *decimal.Decimal `json:"paxg_balance"`
	EthBalance        *decimal.Decimal `json:"eth_balance"`
	AltcoinBalance    *decimal.Decimal `json:"altcoin_balance"`
	PremercadoBalance *decimal.Decimal `json:"premercado_balance"`
}

func (p PortfolioPatch) empty() bool {
	return p.TotalBalance == nil && p.PaxgBalance == nil && p.EthBalance == nil &&
		p.AltcoinBalance == nil && p.PremercadoBalance == nil
}

func (s *PortfolioService) Patch(ctx context.Context, patch PortfolioPatch) (*models.Portfolio, error) {
	if patch.empty() {
		return nil, validationErr("no updatable fields supplied")
	}
	current, err := s.Repo.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, notFoundErr("portfolio not initialized")
	}
	if patch.TotalBalance != nil {
		current.TotalBalance = *patch.TotalBalance
	}
	if patch.PaxgBalance != nil {
		current.PaxgBalance = *patch.PaxgBalance
	}
	if patch.EthBalance != nil {
		current.EthBalance = *patch.EthBalance
	}
	if patch.AltcoinBalance != nil {
		current.AltcoinBalance = *patch.AltcoinBalance
	}
	if patch.PremercadoBalance != nil {
		current.PremercadoBalance = *patch.PremercadoBalance
	}
	current.UpdatedAt = time.Now().UTC()
	if err := s.Repo.SavePortfolio(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// ApplyBalanceDeltaTx adjusts one funding bucket and the total balance by the
// same signed delta, inside the caller's transaction. Only operation buckets
// (ETH, ALTCOIN) are valid here; rotations address buckets directly.
func (s *PortfolioService) ApplyBalanceDeltaTx(tx *gorm.DB, strategy string, amount decimal.Decimal, action BalanceAction) error {
	p, err := s.Repo.GetPortfolioTx(tx)
	if err != nil {
		return err
	}
	if p == nil {
		return notFoundErr("portfolio not initialized")
	}

	delta := amount
	if action == ActionSubtract {
		delta = amount.Neg()
	}

	switch strategy {
	case models.StrategyETH:
		p.EthBalance = p.EthBalance.Add(delta)
	case models.StrategyAltcoin:
		p.AltcoinBalance = p.AltcoinBalance.Add(delta)
	default:
		if s.Logger != nil {
			s.Logger.Error("unknown funding bucket", zap.String("strategy", strategy))
		}
		return validationErr("unknown funding bucket %q", strategy)
	}
	p.TotalBalance = p.TotalBalance.Add(delta)
	p.UpdatedAt = time.Now().UTC()

	return s.Repo.SavePortfolioTx(tx, p)
}

func distribution(p *models.Portfolio) []BucketShare {
	out := []BucketShare{
		{Name: "PAXG", Value: p.PaxgBalance, Percentage: sharePct(p.PaxgBalance, p.TotalBalance)},
		{Name: "ETH", Value: p.EthBalance, Percentage: sharePct(p.EthBalance, p.TotalBalance)},
		{Name: "Altcoins", Value: p.AltcoinBalance, Percentage: sharePct(p.AltcoinBalance, p.TotalBalance)},
	}
	if p.PremercadoBalance.IsPositive() {
		out = append(out, BucketShare{
			Name:       "Premercado",
			Value:      p.PremercadoBalance,
			Percentage: sharePct(p.PremercadoBalance, p.TotalBalance),
		})
	}
	return out
}

func sharePct(part, total decimal.Decimal) int64 {
	if !total.IsPositive() {
		return 0
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
