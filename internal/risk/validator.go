package risk

import (
	"github.com/shopspring/decimal"

	"tradingdesk/internal/config"
	"tradingdesk/internal/models"
)

const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Metrics are the derived position numbers shown alongside the messages.
// Ratios are zero when the corresponding input is absent.
type Metrics struct {
	PositionSize   decimal.Decimal `json:"position_size"`
	RiskAmount     decimal.Decimal `json:"risk_amount"`
	RiskPercentage decimal.Decimal `json:"risk_percentage"`
	RewardRatio1   decimal.Decimal `json:"reward_ratio_1"`
	RewardRatio2   decimal.Decimal `json:"reward_ratio_2"`
	RewardRatio3   decimal.Decimal `json:"reward_ratio_3"`
}

type Result struct {
	Valid    bool      `json:"is_valid"`
	Metrics  Metrics   `json:"metrics"`
	Messages []Message `json:"messages"`
}

// Validator applies the strategy's pre-trade rules. All checks are advisory:
// a failing result never blocks the write, it is returned (and stored on the
// operation) so the caller can decide.
type Validator struct {
	Config config.RiskConfig
}

// Evaluate computes position metrics for a proposed operation and flags every
// rule the proposal breaks against the current portfolio.
func (v *Validator) Evaluate(op models.Operation, portfolio *models.Portfolio) Result {
	m := computeMetrics(op)
	res := Result{Valid: true, Metrics: m}

	maxRisk := decimal.NewFromFloat(v.Config.MaxRiskPercentage)
	minReward := decimal.NewFromFloat(v.Config.MinRewardRatio)
	altcoinCap := decimal.NewFromFloat(v.Config.AltcoinMaxOfTotalPct)

	// Strictly greater: a risk of exactly the threshold passes.
	if op.StopLoss != nil && m.RiskPercentage.GreaterThan(maxRisk) {
		res.add(SeverityWarning, "risk per operation exceeds the recommended "+maxRisk.String()+"%")
	}

	if portfolio != nil {
		switch op.StrategyType {
		case models.StrategyETH:
			if m.PositionSize.GreaterThan(portfolio.EthBalance) {
				res.add(SeverityError, "position size exceeds the available ETH balance")
			}
		case models.StrategyAltcoin:
			if m.PositionSize.GreaterThan(portfolio.AltcoinBalance) {
				res.add(SeverityError, "position size exceeds the available altcoin balance")
			}
		}
	}

	if op.TakeProfit1 != nil && m.RewardRatio1.LessThan(minReward) {
		res.add(SeverityWarning, "reward/risk ratio on TP1 is below "+minReward.String()+":1")
	}

	if op.StrategyType == models.StrategyAltcoin && portfolio != nil && portfolio.TotalBalance.IsPositive() {
		share := m.PositionSize.Div(portfolio.TotalBalance).Mul(decimal.NewFromInt(100))
		if share.GreaterThan(altcoinCap) {
			res.add(SeverityWarning, "operation commits more than "+altcoinCap.String()+"% of total capital to one altcoin")
		}
	}

	return res
}

func (r *Result) add(severity, message string) {
	r.Valid = false
	r.Messages = append(r.Messages, Message{Type: severity, Message: message})
}

func computeMetrics(op models.Operation) Metrics {
	m := Metrics{}
	m.PositionSize = op.EntryPrice.Mul(op.Amount)

	if op.StopLoss == nil {
		return m
	}
	priceChange := op.EntryPrice.Sub(*op.StopLoss).Abs()
	m.RiskAmount = priceChange.Mul(op.Amount)
	if m.PositionSize.IsPositive() {
		m.RiskPercentage = m.RiskAmount.Div(m.PositionSize).Mul(decimal.NewFromInt(100))
	}
	if priceChange.IsZero() {
		return m
	}
	if op.TakeProfit1 != nil {
		m.RewardRatio1 = op.TakeProfit1.Sub(op.EntryPrice).Abs().Div(priceChange)
	}
	if op.TakeProfit2 != nil {
		m.RewardRatio2 = op.TakeProfit2.Sub(op.EntryPrice).Abs().Div(priceChange)
	}
	if op.TakeProfit3 != nil {
		m.RewardRatio3 = op.TakeProfit3.Sub(op.EntryPrice).Abs().Div(priceChange)
	}
	return m
}
