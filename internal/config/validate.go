package config

import (
	"fmt"

	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/rpgo/projection-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	minYear = 1900
	maxYear = 2100
	maxAge  = 120
	// maxProjectionYears bounds lump sum horizons
	maxProjectionYears = 100
)

var maxRate = decimal.NewFromInt(1)

func (c *collector) year(field string, row, year int) {
	if year < minYear || year > maxYear {
		c.rangeErr(field, row, year, fmt.Sprintf("must be between %d and %d", minYear, maxYear))
	}
}

func (c *collector) nonNegative(field string, row int, v decimal.Decimal) {
	if v.IsNegative() {
		c.rangeErr(field, row, v, "must be >= 0")
	}
}

func (c *collector) rate(field string, row int, v decimal.Decimal) {
	if v.IsNegative() || v.GreaterThan(maxRate) {
		c.rangeErr(field, row, v, "must be between 0 and 1")
	}
}

func (c *collector) age(field string, age int) {
	if age < 0 || age > maxAge {
		c.rangeErr(field, 0, age, fmt.Sprintf("must be between 0 and %d", maxAge))
	}
}

func (c *collector) date(field string, d domain.Date) {
	if d.IsZero() {
		c.rangeErr(field, 0, "missing", "is required")
		return
	}
	c.year(field, 0, d.Year())
}

// ValidateConfiguration validates every calculator section present in the
// configuration and reports all problems at once.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil || config.Empty() {
		return fmt.Errorf("%w: no calculator sections provided", ErrInvalidInput)
	}

	var errs ValidationErrors
	appendErrs := func(err error) {
		if v, ok := err.(ValidationErrors); ok {
			errs = append(errs, v...)
		}
	}
	if config.Buckets != nil {
		appendErrs(validateBucketPlan("buckets", config.Buckets))
	}
	if config.Accumulation != nil {
		appendErrs(validateAccumulationPlan("accumulation", config.Accumulation))
	}
	if config.LumpSum != nil {
		appendErrs(validateLumpSumPlan("lump_sum", config.LumpSum))
	}
	if config.SharePlan != nil {
		appendErrs(validateSharePlan("share_plan", config.SharePlan))
	}
	if config.SocialSecurity != nil {
		appendErrs(validateSocialSecurityPlan("social_security", config.SocialSecurity))
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateBucketPlan validates a standalone bucket plan
func ValidateBucketPlan(plan *domain.BucketPlan) error { return validateBucketPlan("", plan) }

// ValidateAccumulationPlan validates a standalone accumulation plan
func ValidateAccumulationPlan(plan *domain.AccumulationPlan) error {
	return validateAccumulationPlan("", plan)
}

// ValidateLumpSumPlan validates a standalone lump sum plan
func ValidateLumpSumPlan(plan *domain.LumpSumPlan) error { return validateLumpSumPlan("", plan) }

// ValidateSharePlan validates a standalone share plan
func ValidateSharePlan(plan *domain.SharePlan) error { return validateSharePlan("", plan) }

// ValidateSocialSecurityPlan validates a standalone Social Security plan
func ValidateSocialSecurityPlan(plan *domain.SocialSecurityPlan) error {
	return validateSocialSecurityPlan("", plan)
}

func validateBucketPlan(prefix string, plan *domain.BucketPlan) error {
	c := &collector{prefix: prefix}
	c.year("start_year", 0, plan.StartYear)
	c.age("current_age", plan.CurrentAge)
	c.age("retirement_age", plan.RetirementAge)
	if plan.TargetAge != nil && *plan.TargetAge <= plan.CurrentAge {
		c.rangeErr("target_age", 0, *plan.TargetAge, fmt.Sprintf("must be greater than current age %d", plan.CurrentAge))
	}
	c.nonNegative("current_salary", 0, plan.CurrentSalary)
	c.rate("cola", 0, plan.COLA)
	c.rate("pre_return", 0, plan.PreReturn)
	c.rate("post_return", 0, plan.PostReturn)

	switch plan.Mode() {
	case domain.ContributionAmount, domain.ContributionPercent:
	default:
		c.rangeErr("contribution_mode", 0, plan.ContributionMode, "must be amount or percent")
	}
	switch plan.Rates() {
	case domain.RateSourceGlobal, domain.RateSourcePerBucket:
	default:
		c.rangeErr("rate_source", 0, plan.RateSource, "must be global or per_bucket")
	}

	if len(plan.Buckets) == 0 {
		c.rangeErr("buckets", 0, 0, "at least one bucket is required")
	}
	seen := make(map[string]int, len(plan.Buckets))
	for i, b := range plan.Buckets {
		row := i + 1
		if b.Name == "" {
			c.rangeErr("name", row, "missing", "is required")
		} else if first, dup := seen[b.Name]; dup {
			c.rangeErr("name", row, b.Name, fmt.Sprintf("duplicates row %d", first))
		} else {
			seen[b.Name] = row
		}
		c.nonNegative("starting_balance", row, b.StartingBalance)
		c.nonNegative("starting_contribution", row, b.StartingContribution)
		if plan.Mode() == domain.ContributionPercent && b.StartingContribution.GreaterThan(maxRate) {
			c.rangeErr("starting_contribution", row, b.StartingContribution, "percent contributions must be a fraction between 0 and 1")
		}
		if b.PayoutYear <= 0 {
			c.rangeErr("payout_year", row, b.PayoutYear, "must be > 0")
		} else if b.PayoutYear <= plan.StartYear {
			c.rangeErr("payout_year", row, b.PayoutYear, fmt.Sprintf("must be after start year %d", plan.StartYear))
		} else {
			c.year("payout_year", row, b.PayoutYear)
		}
		if b.ReturnRate != nil {
			c.rate("return_rate", row, *b.ReturnRate)
		} else if plan.Rates() == domain.RateSourcePerBucket {
			c.rangeErr("return_rate", row, "missing", "is required when rate_source is per_bucket")
		}
	}
	return c.err()
}

func validatePerson(c *collector, p domain.Person) {
	c.date("person.birth_date", p.BirthDate)
	switch {
	case p.HireDate != nil && p.YearsOfService != nil:
		c.conflict("person.hire_date", "person.years_of_service", "provide either a hire date or years of service, not both")
	case p.HireDate == nil && p.YearsOfService == nil:
		c.conflict("person.hire_date", "person.years_of_service", "provide either a hire date or years of service")
	}
	if p.HireDate != nil {
		c.date("person.hire_date", *p.HireDate)
		if age, ok := p.AgeAtHire(); ok && !p.BirthDate.IsZero() && age < domain.MinimumWorkingAge {
			c.rangeErr("person.hire_date", 0, p.HireDate.String(),
				fmt.Sprintf("person started working at age %d; minimum working age is %d", age, domain.MinimumWorkingAge))
		}
	}
	if p.YearsOfService != nil && (*p.YearsOfService < 0 || *p.YearsOfService > maxAge) {
		c.rangeErr("person.years_of_service", 0, *p.YearsOfService, fmt.Sprintf("must be between 0 and %d", maxAge))
	}
}

func validateAccumulationPlan(prefix string, plan *domain.AccumulationPlan) error {
	c := &collector{prefix: prefix}
	validatePerson(c, plan.Person)
	c.nonNegative("eligible_pay", 0, plan.EligiblePay)
	c.nonNegative("start_balance", 0, plan.StartBalance)
	c.rate("return_rate", 0, plan.ReturnRate)
	c.rate("pay_growth_rate", 0, plan.PayGrowthRate)
	if plan.ReferenceYear != 0 {
		c.year("reference_year", 0, plan.ReferenceYear)
	}
	c.age("target_age", plan.TargetAge)
	if !plan.Person.BirthDate.IsZero() {
		refAge := plan.Person.Age(dateutil.BeginningOfYear(plan.Year()))
		if plan.TargetAge <= refAge {
			c.rangeErr("target_age", 0, plan.TargetAge,
				fmt.Sprintf("must be greater than age %d on January 1, %d", refAge, plan.Year()))
		}
	}
	if plan.ServiceCredit != nil {
		w := plan.ServiceCredit
		c.date("service_credit.reference_date", w.ReferenceDate)
		if w.Threshold <= 0 {
			c.rangeErr("service_credit.threshold", 0, w.Threshold, "must be > 0")
		}
		c.year("service_credit.start_year", 0, w.StartYear)
		c.year("service_credit.end_year", 0, w.EndYear)
		if w.EndYear < w.StartYear {
			c.rangeErr("service_credit.end_year", 0, w.EndYear, "must not be before start_year")
		}
		c.rate("service_credit.extra_rate", 0, w.ExtraRate)
	}
	return c.err()
}

func validateLumpSumPlan(prefix string, plan *domain.LumpSumPlan) error {
	c := &collector{prefix: prefix}
	c.nonNegative("lump_sum_amount", 0, plan.LumpSumAmount)
	c.nonNegative("starting_balance", 0, plan.StartingBalance)
	c.nonNegative("annual_payment", 0, plan.AnnualPayment)
	c.rate("return_rate", 0, plan.ReturnRate)
	c.rate("tax_rate", 0, plan.TaxRate)
	c.rate("discount_rate", 0, plan.DiscountRate)
	if plan.Years < 1 || plan.Years > maxProjectionYears {
		c.rangeErr("years", 0, plan.Years, fmt.Sprintf("must be between 1 and %d", maxProjectionYears))
	}
	return c.err()
}

func validateSharePlan(prefix string, plan *domain.SharePlan) error {
	c := &collector{prefix: prefix}
	c.year("start_year", 0, plan.StartYear)
	c.year("end_year", 0, plan.EndYear)
	if plan.EndYear < plan.StartYear {
		c.rangeErr("end_year", 0, plan.EndYear, fmt.Sprintf("must not be before start year %d", plan.StartYear))
	}
	c.nonNegative("shares_per_year", 0, plan.SharesPerYear)
	c.nonNegative("share_price", 0, plan.SharePrice)
	c.rate("tax_rate", 0, plan.TaxRate)
	c.rate("growth_rate", 0, plan.GrowthRate)
	return c.err()
}

func validateSocialSecurityPlan(prefix string, plan *domain.SocialSecurityPlan) error {
	c := &collector{prefix: prefix}
	c.date("birth_date", plan.BirthDate)
	if plan.AsOf != nil {
		c.date("as_of", *plan.AsOf)
	}
	c.rate("cola_rate", 0, plan.COLARate)
	switch plan.Timing() {
	case domain.COLAJanuary, domain.COLABirthday:
	default:
		c.rangeErr("cola_timing", 0, plan.COLATiming, "must be january or birthday")
	}
	c.age("horizon_age", plan.HorizonAge)

	if len(plan.Claims) == 0 {
		c.rangeErr("claims", 0, 0, "at least one claim age is required")
	}
	seen := make(map[int]int, len(plan.Claims))
	for i, claim := range plan.Claims {
		row := i + 1
		if claim.Age <= 0 || claim.Age > maxAge {
			c.rangeErr("claims.age", row, claim.Age, fmt.Sprintf("must be between 1 and %d", maxAge))
		} else if first, dup := seen[claim.Age]; dup {
			c.rangeErr("claims.age", row, claim.Age, fmt.Sprintf("duplicates row %d", first))
		} else {
			seen[claim.Age] = row
		}
		if claim.Age >= plan.HorizonAge {
			c.rangeErr("claims.age", row, claim.Age, fmt.Sprintf("must be below horizon age %d", plan.HorizonAge))
		}
		c.nonNegative("claims.monthly_benefit", row, claim.MonthlyBenefit)
	}
	return c.err()
}
