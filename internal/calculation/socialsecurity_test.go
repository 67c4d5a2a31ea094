package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ssPlan(claims ...domain.Claim) domain.SocialSecurityPlan {
	asOf := domain.NewDate(2025, 6, 1)
	return domain.SocialSecurityPlan{
		BirthDate:  domain.NewDate(1965, 5, 15),
		AsOf:       &asOf,
		COLARate:   dec("0.10"),
		HorizonAge: 70,
		Claims:     claims,
	}
}

func TestBuildBenefitSeries_Flat(t *testing.T) {
	plan := ssPlan()
	series := BuildBenefitSeries(plan, domain.Claim{Age: 62, MonthlyBenefit: dec("1000")}, plan.AsOf.Time)

	require.Len(t, series.Points, 96)
	assert.Equal(t, domain.NewDate(2027, 5, 1), series.Points[0].Month)
	assert.Equal(t, domain.NewDate(2035, 4, 1), series.Points[95].Month)
	assert.Equal(t, "96000", series.Total().String())

	for i := 1; i < len(series.Points); i++ {
		assert.True(t, series.Points[i].Cumulative.GreaterThanOrEqual(series.Points[i-1].Cumulative))
	}
}

func TestBuildBenefitSeries_PaymentLag(t *testing.T) {
	plan := ssPlan()
	plan.PaymentLag = true
	series := BuildBenefitSeries(plan, domain.Claim{Age: 62, MonthlyBenefit: dec("1000")}, plan.AsOf.Time)
	require.Len(t, series.Points, 95)
	assert.Equal(t, domain.NewDate(2027, 6, 1), series.Points[0].Month)
}

func TestBuildBenefitSeries_JanuaryCOLA(t *testing.T) {
	plan := ssPlan()
	plan.ApplyCOLA = true
	plan.COLATiming = domain.COLAJanuary

	series := BuildBenefitSeries(plan, domain.Claim{Age: 62, MonthlyBenefit: dec("1000")}, plan.AsOf.Time)
	// January 2026 and January 2027 precede the first payment
	assert.Equal(t, "1210", series.StartingMonthly.String())
	assert.Equal(t, domain.NewDate(2027, 12, 1), series.Points[7].Month)
	assert.Equal(t, "1210", series.Points[7].Payment.String())
	assert.Equal(t, "1331", series.Points[8].Payment.String())
}

func TestBuildBenefitSeries_BirthdayCOLA(t *testing.T) {
	plan := ssPlan()
	plan.ApplyCOLA = true
	plan.COLATiming = domain.COLABirthday

	series := BuildBenefitSeries(plan, domain.Claim{Age: 62, MonthlyBenefit: dec("1000")}, plan.AsOf.Time)
	assert.Equal(t, "1100", series.StartingMonthly.String())
	assert.Equal(t, "1100", series.Points[11].Payment.String())
	assert.Equal(t, "1210", series.Points[12].Payment.String())

	// as-of before the birthday counts that year's birthday too
	early := domain.NewDate(2025, 3, 1)
	series = BuildBenefitSeries(plan, domain.Claim{Age: 62, MonthlyBenefit: dec("1000")}, early.Time)
	assert.Equal(t, "1210", series.StartingMonthly.String())
}

func TestBuildBenefitSeries_COLADisabled(t *testing.T) {
	plan := ssPlan()
	plan.COLATiming = domain.COLABirthday
	series := BuildBenefitSeries(plan, domain.Claim{Age: 62, MonthlyBenefit: dec("1000")}, plan.AsOf.Time)
	assert.Equal(t, "1000", series.StartingMonthly.String())
	assert.Equal(t, "1000", series.Points[50].Payment.String())

	plan.ApplyCOLA = true
	plan.COLARate = dec("0")
	series = BuildBenefitSeries(plan, domain.Claim{Age: 62, MonthlyBenefit: dec("1000")}, plan.AsOf.Time)
	assert.Equal(t, "1000", series.Points[50].Payment.String())
}

func TestAnalyzeSocialSecurity(t *testing.T) {
	plan := ssPlan(
		domain.Claim{Age: 63, MonthlyBenefit: dec("1200")},
		domain.Claim{Age: 62, MonthlyBenefit: dec("1000")},
	)

	analysis, err := NewCalculationEngine().AnalyzeSocialSecurity(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, []int{62, 63}, analysis.ClaimAges)
	require.Len(t, analysis.Totals, 2)
	assert.Equal(t, "Claim 62", analysis.Totals[0].Claim)
	assert.Equal(t, "96000", analysis.Totals[0].Total.String())
	assert.Equal(t, "100800", analysis.Totals[1].Total.String())

	require.Len(t, analysis.Yearly, 9)
	assert.Equal(t, 62, analysis.Yearly[0].Age)
	assert.True(t, analysis.Yearly[0].Totals[0].IsZero())
	assert.Equal(t, 63, analysis.Yearly[1].Age)
	assert.Equal(t, "12000", analysis.Yearly[1].Totals[0].String())
	assert.True(t, analysis.Yearly[1].Totals[1].IsZero())
	assert.Equal(t, "96000", analysis.Yearly[8].Totals[0].String())
	assert.Equal(t, "100800", analysis.Yearly[8].Totals[1].String())

	require.Len(t, analysis.Breakevens, 1)
	pair := analysis.Breakevens[0]
	assert.Equal(t, "62 vs 63", pair.Pair)
	require.NotNil(t, pair.Month)
	assert.Equal(t, domain.NewDate(2033, 4, 1), *pair.Month)
	assert.Equal(t, "67y 11m", pair.Age)
}

func TestAnalyzeSocialSecurity_NoBreakeven(t *testing.T) {
	plan := ssPlan(
		domain.Claim{Age: 62, MonthlyBenefit: dec("1000")},
		domain.Claim{Age: 63, MonthlyBenefit: dec("900")},
		domain.Claim{Age: 64, MonthlyBenefit: dec("800")},
	)
	analysis, err := NewCalculationEngine().AnalyzeSocialSecurity(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, analysis.Breakevens, 3)
	assert.Equal(t, []string{"62 vs 63", "62 vs 64", "63 vs 64"},
		[]string{analysis.Breakevens[0].Pair, analysis.Breakevens[1].Pair, analysis.Breakevens[2].Pair})
	for _, pair := range analysis.Breakevens {
		assert.Nil(t, pair.Month)
		assert.Equal(t, NoBreakevenLabel, pair.Age)
	}
}

func TestAnalyzeSocialSecurity_DefaultsAsOfToNow(t *testing.T) {
	SetNowFunc(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { SetNowFunc(time.Now) })

	plan := ssPlan(domain.Claim{Age: 62, MonthlyBenefit: dec("1000")})
	plan.AsOf = nil
	plan.ApplyCOLA = true

	analysis, err := NewCalculationEngine().AnalyzeSocialSecurity(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "1210", analysis.Series[0].StartingMonthly.String())
	assert.Empty(t, analysis.Breakevens)
}

func TestAnalyzeSocialSecurity_NoClaims(t *testing.T) {
	analysis, err := NewCalculationEngine().AnalyzeSocialSecurity(context.Background(), ssPlan())
	require.NoError(t, err)
	assert.Empty(t, analysis.Series)
	assert.Empty(t, analysis.Yearly)
}
