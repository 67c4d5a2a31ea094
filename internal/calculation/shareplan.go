package calculation

import (
	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// AccumulateSharePlan adds each year's after-tax share value to the
// accumulated total and grows the total, for start through end inclusive.
func (ce *CalculationEngine) AccumulateSharePlan(plan domain.SharePlan) domain.SharePlanAccumulation {
	keep := decimal.NewFromInt(1).Sub(plan.TaxRate)

	var out domain.SharePlanAccumulation
	accumulated := decimal.Zero
	for year := plan.StartYear; year <= plan.EndYear; year++ {
		gross := plan.SharesPerYear.Mul(plan.SharePrice)
		net := gross.Mul(keep)
		accumulated = StepActive(accumulated, net, plan.GrowthRate)
		out.Rows = append(out.Rows, domain.SharePlanRow{
			Year:             year,
			Shares:           plan.SharesPerYear,
			SharePrice:       plan.SharePrice,
			GrossValue:       gross,
			NetValue:         net,
			AccumulatedValue: accumulated,
		})
	}
	out.FinalValue = accumulated
	return out
}
