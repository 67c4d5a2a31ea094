package calculation

import (
	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/rpgo/projection-engine/pkg/dateutil"
	moneyutil "github.com/rpgo/projection-engine/pkg/decimal"
)

// ForecastAccumulation projects employer contributions from the reference
// year until the target age. Each year the regular and extra contributions
// are added to the balance before growth, then salary and service advance.
func (ce *CalculationEngine) ForecastAccumulation(plan domain.AccumulationPlan) domain.AccumulationForecast {
	window := plan.Window()
	refYear := plan.Year()
	refAge := plan.Person.Age(dateutil.BeginningOfYear(refYear))
	years := plan.TargetAge - refAge

	eligible, score := ServiceCreditEligibility(window, plan.Person)
	service := plan.Person.ServiceYears(dateutil.EndOfYear(refYear - 1))
	ce.logger().Debugf("accumulation: reference age %d, %d years, service %d, credit eligible %t (score %d)",
		refAge, years, service, eligible, score)

	forecast := domain.AccumulationForecast{
		ReferenceAge:          refAge,
		ServiceCreditEligible: eligible,
		EligibilityScore:      score,
		FinalBalance:          plan.StartBalance,
	}

	growth := moneyutil.GrowthFactor(plan.PayGrowthRate)
	salary := plan.EligiblePay.Mul(growth)
	balance := plan.StartBalance
	for i := 0; i < years; i++ {
		year := refYear + i
		rate := ServiceTierRate(service)
		extra := ServiceCreditRate(window, eligible, year)
		regular := salary.Mul(rate)
		credit := salary.Mul(extra)
		total := regular.Add(credit)
		balance = StepActive(balance, total, plan.ReturnRate)

		forecast.Rows = append(forecast.Rows, domain.AccumulationRow{
			Year:              year,
			Age:               refAge + i,
			ServiceYears:      service,
			Salary:            salary,
			ContributionRate:  rate,
			ExtraRate:         extra,
			RegularAmount:     regular,
			ExtraAmount:       credit,
			TotalContribution: total,
			Balance:           balance,
		})

		salary = salary.Mul(growth)
		service++
	}
	forecast.FinalBalance = balance
	return forecast
}
