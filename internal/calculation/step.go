package calculation

import (
	moneyutil "github.com/rpgo/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// StepActive advances a balance one period in the active phase: the
// contribution is added first and the sum grows by rate.
func StepActive(balance, contribution, rate decimal.Decimal) decimal.Decimal {
	return balance.Add(contribution).Mul(moneyutil.GrowthFactor(rate))
}

// StepRunoff advances a balance one period in the runoff phase.
func StepRunoff(balance, rate decimal.Decimal) decimal.Decimal {
	return balance.Mul(moneyutil.GrowthFactor(rate))
}

// Step advances a balance one period in the given phase. The contribution
// is ignored during runoff.
func Step(phase Phase, balance, contribution, rate decimal.Decimal) decimal.Decimal {
	if phase == PhaseActive {
		return StepActive(balance, contribution, rate)
	}
	return StepRunoff(balance, rate)
}
