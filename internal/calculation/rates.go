package calculation

import (
	"github.com/rpgo/projection-engine/internal/domain"
	moneyutil "github.com/rpgo/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Phase distinguishes contribution years from runoff years
type Phase int

const (
	PhaseActive Phase = iota
	PhaseRunoff
)

func (p Phase) String() string {
	if p == PhaseActive {
		return "active"
	}
	return "runoff"
}

// ResolvePhase returns PhaseActive while age is below the retirement age
func ResolvePhase(age, retirementAge int) Phase {
	if age < retirementAge {
		return PhaseActive
	}
	return PhaseRunoff
}

// ResolveRate returns the growth rate applied to a bucket in a phase
func ResolveRate(plan domain.BucketPlan, bucket domain.Bucket, phase Phase) decimal.Decimal {
	if plan.Rates() == domain.RateSourcePerBucket {
		if bucket.ReturnRate == nil {
			return decimal.Zero
		}
		return *bucket.ReturnRate
	}
	if phase == PhaseActive {
		return plan.PreReturn
	}
	return plan.PostReturn
}

// ContributionRule yields successive per-period contributions for one bucket.
// Each call to Next returns the current contribution and then grows its base
// by COLA, so period t reflects t-1 periods of growth.
type ContributionRule struct {
	mode     domain.ContributionMode
	amount   decimal.Decimal
	fraction decimal.Decimal
	salary   decimal.Decimal
	growth   decimal.Decimal
}

// NewContributionRule builds the rule for a bucket under a plan
func NewContributionRule(plan domain.BucketPlan, bucket domain.Bucket) *ContributionRule {
	rule := &ContributionRule{
		mode:   plan.Mode(),
		growth: moneyutil.GrowthFactor(plan.COLA),
	}
	if rule.mode == domain.ContributionPercent {
		rule.fraction = bucket.StartingContribution
		rule.salary = plan.CurrentSalary
	} else {
		rule.amount = bucket.StartingContribution
	}
	return rule
}

// Next returns this period's contribution and advances the rule
func (c *ContributionRule) Next() decimal.Decimal {
	if c.mode == domain.ContributionPercent {
		contribution := c.salary.Mul(c.fraction)
		c.salary = c.salary.Mul(c.growth)
		return contribution
	}
	contribution := c.amount
	c.amount = c.amount.Mul(c.growth)
	return contribution
}

var serviceTiers = []struct {
	below int
	rate  decimal.Decimal
}{
	{10, decimal.NewFromFloat(0.05)},
	{15, decimal.NewFromFloat(0.06)},
	{20, decimal.NewFromFloat(0.07)},
	{25, decimal.NewFromFloat(0.08)},
	{30, decimal.NewFromFloat(0.09)},
}

var topServiceRate = decimal.NewFromFloat(0.10)

// ServiceTierRate returns the employer contribution rate for years of service
func ServiceTierRate(years int) decimal.Decimal {
	for _, tier := range serviceTiers {
		if years < tier.below {
			return tier.rate
		}
	}
	return topServiceRate
}

// ServiceCreditEligibility evaluates the age plus service test at the
// window's reference date and returns the combined score.
func ServiceCreditEligibility(w domain.ServiceCreditWindow, person domain.Person) (bool, int) {
	at := w.ReferenceDate.Time
	score := person.Age(at) + person.ServiceYears(at)
	return score >= w.Threshold, score
}

// ServiceCreditRate returns the extra contribution rate for a year, zero
// outside the window or when the person is not eligible.
func ServiceCreditRate(w domain.ServiceCreditWindow, eligible bool, year int) decimal.Decimal {
	if !eligible || !w.Covers(year) {
		return decimal.Zero
	}
	return w.ExtraRate
}

