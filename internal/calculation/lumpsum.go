package calculation

import (
	"github.com/rpgo/projection-engine/internal/domain"
	moneyutil "github.com/rpgo/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CompareLumpSum keeps the balance invested, drawing the annual payment from
// the second year on, and taxes each year's gain. The final balance is
// discounted back to today.
func (ce *CalculationEngine) CompareLumpSum(plan domain.LumpSumPlan) domain.LumpSumComparison {
	discount := moneyutil.GrowthFactor(plan.DiscountRate)
	result := domain.LumpSumComparison{LumpSumAmount: plan.LumpSumAmount}

	balance := plan.StartingBalance
	factor := decimal.NewFromInt(1)
	for year := 1; year <= plan.Years; year++ {
		payment := decimal.Zero
		if year > 1 {
			payment = plan.AnnualPayment
			balance = balance.Sub(payment)
		}
		start := balance
		gross := balance.Mul(plan.ReturnRate)
		tax := gross.Mul(plan.TaxRate)
		net := gross.Sub(tax)
		balance = balance.Add(net)
		factor = factor.Mul(discount)

		result.Rows = append(result.Rows, domain.LumpSumRow{
			Year:         year,
			StartBalance: start,
			Payment:      payment,
			GrossGain:    gross,
			Tax:          tax,
			NetGain:      net,
			EndBalance:   balance,
			PresentValue: balance.Div(factor),
		})
	}

	result.FinalBalance = balance
	result.PresentValue = balance.Div(factor)
	result.AnnualPaymentsFavored = result.PresentValue.IsPositive()
	ce.logger().Debugf("lump sum: final balance %s, present value %s", balance.StringFixed(2), result.PresentValue.StringFixed(2))
	return result
}
