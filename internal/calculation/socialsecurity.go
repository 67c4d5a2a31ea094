package calculation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/rpgo/projection-engine/pkg/dateutil"
	moneyutil "github.com/rpgo/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// NoBreakevenLabel is shown for a pair of claim ages that never cross
const NoBreakevenLabel = "—"

// claimMonth is the first of the birth month in the year the claim age is reached
func claimMonth(dob time.Time, claimAge int) time.Time {
	return dateutil.BirthdayMonth(dob, claimAge)
}

// firstPaymentMonth applies the optional one-month payment lag
func firstPaymentMonth(dob time.Time, claimAge int, lag bool) time.Time {
	start := claimMonth(dob, claimAge)
	if lag {
		return dateutil.FirstOfNextMonth(start)
	}
	return start
}

// preclaimStepsJanuary counts January 1sts after asOf and before the first payment
func preclaimStepsJanuary(asOf, firstPay time.Time) int {
	steps := 0
	for d := dateutil.BeginningOfYear(asOf.Year() + 1); d.Before(firstPay); d = dateutil.BeginningOfYear(d.Year() + 1) {
		steps++
	}
	return steps
}

// preclaimStepsBirthday counts birthday months after asOf and before the claim month
func preclaimStepsBirthday(dob, asOf time.Time, claimAge int) int {
	year := asOf.Year() + 1
	if asOf.Month() < dob.Month() || (asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		year = asOf.Year()
	}
	cm := claimMonth(dob, claimAge)
	steps := 0
	for d := dateutil.Date(year, dob.Month(), 1); d.Before(cm); d = dateutil.Date(d.Year()+1, dob.Month(), 1) {
		steps++
	}
	return steps
}

// yearsSinceClaimBirthday counts completed years since the claim month
func yearsSinceClaimBirthday(dob, d time.Time, claimAge int) int {
	cm := claimMonth(dob, claimAge)
	if d.Before(cm) {
		return 0
	}
	years := d.Year() - cm.Year()
	if d.Month() < cm.Month() || (d.Month() == cm.Month() && d.Day() < cm.Day()) {
		years--
	}
	return max(0, years)
}

// BuildBenefitSeries returns the monthly cumulative benefit stream for a claim,
// from the first payment month up to the horizon birthday month (exclusive).
func BuildBenefitSeries(plan domain.SocialSecurityPlan, claim domain.Claim, asOf time.Time) domain.BenefitSeries {
	dob := plan.BirthDate.Time
	applyCOLA := plan.ApplyCOLA && plan.COLARate.IsPositive()
	timing := plan.Timing()
	first := firstPaymentMonth(dob, claim.Age, plan.PaymentLag)

	start := claim.MonthlyBenefit
	if applyCOLA {
		var steps int
		if timing == domain.COLAJanuary {
			steps = preclaimStepsJanuary(asOf, first)
		} else {
			steps = preclaimStepsBirthday(dob, asOf, claim.Age)
		}
		start = moneyutil.Compound(start, plan.COLARate, steps)
	}

	series := domain.BenefitSeries{ClaimAge: claim.Age, StartingMonthly: start}
	end := dateutil.BirthdayMonth(dob, plan.HorizonAge)
	growth := moneyutil.GrowthFactor(plan.COLARate)
	amount := start
	cumulative := decimal.Zero
	for month := first; month.Before(end); month = dateutil.FirstOfNextMonth(month) {
		if applyCOLA && timing == domain.COLABirthday {
			amount = moneyutil.Compound(start, plan.COLARate, yearsSinceClaimBirthday(dob, month, claim.Age))
		}
		cumulative = cumulative.Add(amount)
		series.Points = append(series.Points, domain.BenefitPoint{
			Month:      domain.Date{Time: month},
			Payment:    amount,
			Cumulative: cumulative,
		})
		// January COLA takes effect for the following month
		if applyCOLA && timing == domain.COLAJanuary && dateutil.FirstOfNextMonth(month).Month() == time.January {
			amount = amount.Mul(growth)
		}
	}
	return series
}

// CumulativeAtAge returns the cumulative total through the month before the
// birthday month of age.
func CumulativeAtAge(series domain.BenefitSeries, dob time.Time, age int) decimal.Decimal {
	boundary := dateutil.BirthdayMonth(dob, age)
	last := decimal.Zero
	for _, p := range series.Points {
		if !p.Month.Before(boundary) {
			break
		}
		last = p.Cumulative
	}
	return last
}

// MonthlySeries maps a benefit series onto month-indexed periods
func MonthlySeries(s domain.BenefitSeries) Series {
	out := make(Series, len(s.Points))
	for i, p := range s.Points {
		out[i] = SeriesPoint{Period: dateutil.MonthIndex(p.Month.Time), Value: p.Cumulative}
	}
	return out
}

// BreakevenMonth returns the first month at which two benefit series meet
func BreakevenMonth(a, b domain.BenefitSeries) (time.Time, bool) {
	period, ok := FindBreakeven(MonthlySeries(a), MonthlySeries(b))
	if !ok {
		return time.Time{}, false
	}
	return dateutil.MonthFromIndex(period), true
}

// AnalyzeSocialSecurity compares claiming ages: lifetime totals to the
// horizon, cumulative totals at each age, and pairwise breakeven ages.
func (ce *CalculationEngine) AnalyzeSocialSecurity(ctx context.Context, plan domain.SocialSecurityPlan) (*domain.BreakevenAnalysis, error) {
	asOf := nowFunc().UTC()
	if plan.AsOf != nil {
		asOf = plan.AsOf.Time
	}
	dob := plan.BirthDate.Time

	claims := make([]domain.Claim, len(plan.Claims))
	copy(claims, plan.Claims)
	sort.SliceStable(claims, func(i, j int) bool { return claims[i].Age < claims[j].Age })

	analysis := &domain.BreakevenAnalysis{HorizonAge: plan.HorizonAge}
	for _, claim := range claims {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		series := BuildBenefitSeries(plan, claim, asOf)
		analysis.ClaimAges = append(analysis.ClaimAges, claim.Age)
		analysis.Series = append(analysis.Series, series)
		analysis.Totals = append(analysis.Totals, domain.ClaimTotal{
			Claim:    fmt.Sprintf("Claim %d", claim.Age),
			ClaimAge: claim.Age,
			Total:    series.Total(),
		})
	}
	if len(claims) == 0 {
		return analysis, nil
	}

	for age := claims[0].Age; age <= plan.HorizonAge; age++ {
		row := domain.CumulativeAtAge{Age: age, Totals: make([]decimal.Decimal, len(analysis.Series))}
		for i, series := range analysis.Series {
			row.Totals[i] = CumulativeAtAge(series, dob, age)
		}
		analysis.Yearly = append(analysis.Yearly, row)
	}

	for i := 0; i < len(analysis.Series); i++ {
		for j := i + 1; j < len(analysis.Series); j++ {
			a, b := analysis.Series[i], analysis.Series[j]
			pair := domain.BreakevenPair{
				Pair: fmt.Sprintf("%d vs %d", a.ClaimAge, b.ClaimAge),
				Age:  NoBreakevenLabel,
			}
			if month, ok := BreakevenMonth(a, b); ok {
				pair.Month = &domain.Date{Time: month}
				pair.Age = dateutil.FormatAgeYM(dob, month)
			}
			ce.logger().Debugf("breakeven %s: %s", pair.Pair, pair.Age)
			analysis.Breakevens = append(analysis.Breakevens, pair)
		}
	}
	return analysis, nil
}
