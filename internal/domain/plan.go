package domain

import (
	"github.com/shopspring/decimal"
)

// ContributionMode selects how a bucket's periodic contribution is resolved
type ContributionMode string

const (
	// ContributionAmount adds a fixed amount that grows by COLA each period
	ContributionAmount ContributionMode = "amount"
	// ContributionPercent adds a fraction of a salary that grows by COLA each period
	ContributionPercent ContributionMode = "percent"
)

// RateSource selects where a bucket's per-period return comes from
type RateSource string

const (
	// RateSourceGlobal uses the plan's pre-return before retirement and post-return after
	RateSourceGlobal RateSource = "global"
	// RateSourcePerBucket uses each bucket's own return rate in both phases
	RateSourcePerBucket RateSource = "per_bucket"
)

// Bucket is an independent sub-account with its own payout year.
// In percent mode StartingContribution is the salary fraction.
type Bucket struct {
	Name                 string           `yaml:"name" json:"name" toml:"name"`
	StartingBalance      decimal.Decimal  `yaml:"starting_balance" json:"starting_balance" toml:"starting_balance"`
	StartingContribution decimal.Decimal  `yaml:"starting_contribution" json:"starting_contribution" toml:"starting_contribution"`
	PayoutYear           int              `yaml:"payout_year" json:"payout_year" toml:"payout_year"`
	ReturnRate           *decimal.Decimal `yaml:"return_rate,omitempty" json:"return_rate,omitempty" toml:"return_rate,omitempty"`
}

// BucketPlan is the input of the bucket payout calculator
type BucketPlan struct {
	StartYear        int              `yaml:"start_year" json:"start_year" toml:"start_year"`
	CurrentAge       int              `yaml:"current_age" json:"current_age" toml:"current_age"`
	RetirementAge    int              `yaml:"retirement_age" json:"retirement_age" toml:"retirement_age"`
	TargetAge        *int             `yaml:"target_age,omitempty" json:"target_age,omitempty" toml:"target_age,omitempty"`
	CurrentSalary    decimal.Decimal  `yaml:"current_salary" json:"current_salary" toml:"current_salary"`
	COLA             decimal.Decimal  `yaml:"cola" json:"cola" toml:"cola"`
	PreReturn        decimal.Decimal  `yaml:"pre_return" json:"pre_return" toml:"pre_return"`
	PostReturn       decimal.Decimal  `yaml:"post_return" json:"post_return" toml:"post_return"`
	ContributionMode ContributionMode `yaml:"contribution_mode,omitempty" json:"contribution_mode,omitempty" toml:"contribution_mode,omitempty"`
	RateSource       RateSource       `yaml:"rate_source,omitempty" json:"rate_source,omitempty" toml:"rate_source,omitempty"`
	Buckets          []Bucket         `yaml:"buckets" json:"buckets" toml:"buckets"`
}

// Mode returns the contribution mode, defaulting to amount
func (p BucketPlan) Mode() ContributionMode {
	if p.ContributionMode == "" {
		return ContributionAmount
	}
	return p.ContributionMode
}

// Rates returns the rate source, defaulting to global
func (p BucketPlan) Rates() RateSource {
	if p.RateSource == "" {
		return RateSourceGlobal
	}
	return p.RateSource
}

// MaxPayoutYear returns the latest payout year across buckets
func (p BucketPlan) MaxPayoutYear() int {
	maxYear := 0
	for _, b := range p.Buckets {
		if b.PayoutYear > maxYear {
			maxYear = b.PayoutYear
		}
	}
	return maxYear
}

// HorizonEnd returns the exclusive end year of the trace
func (p BucketPlan) HorizonEnd() int {
	if p.TargetAge != nil {
		return p.StartYear + (*p.TargetAge - p.CurrentAge)
	}
	return p.MaxPayoutYear()
}

// AgeIn returns the projected age in a calendar year
func (p BucketPlan) AgeIn(year int) int {
	return p.CurrentAge + (year - p.StartYear)
}

// ServiceCreditWindow is a bounded extra contribution credit granted when
// age plus service reaches Threshold on ReferenceDate.
type ServiceCreditWindow struct {
	ReferenceDate Date            `yaml:"reference_date" json:"reference_date" toml:"reference_date"`
	Threshold     int             `yaml:"threshold" json:"threshold" toml:"threshold"`
	StartYear     int             `yaml:"start_year" json:"start_year" toml:"start_year"`
	EndYear       int             `yaml:"end_year" json:"end_year" toml:"end_year"`
	ExtraRate     decimal.Decimal `yaml:"extra_rate" json:"extra_rate" toml:"extra_rate"`
}

// DefaultServiceCreditWindow returns the Rule of 55 window
func DefaultServiceCreditWindow() ServiceCreditWindow {
	return ServiceCreditWindow{
		ReferenceDate: NewDate(2025, 12, 31),
		Threshold:     55,
		StartYear:     2026,
		EndYear:       2030,
		ExtraRate:     decimal.NewFromFloat(0.04),
	}
}

// Covers reports whether year falls inside the window, inclusive
func (w ServiceCreditWindow) Covers(year int) bool {
	return year >= w.StartYear && year <= w.EndYear
}

// DefaultReferenceYear is the first simulated year of an accumulation forecast
const DefaultReferenceYear = 2026

// AccumulationPlan is the input of the contribution accumulation calculator
type AccumulationPlan struct {
	Person        Person               `yaml:"person" json:"person" toml:"person"`
	EligiblePay   decimal.Decimal      `yaml:"eligible_pay" json:"eligible_pay" toml:"eligible_pay"`
	ReturnRate    decimal.Decimal      `yaml:"return_rate" json:"return_rate" toml:"return_rate"`
	PayGrowthRate decimal.Decimal      `yaml:"pay_growth_rate" json:"pay_growth_rate" toml:"pay_growth_rate"`
	TargetAge     int                  `yaml:"target_age" json:"target_age" toml:"target_age"`
	ReferenceYear int                  `yaml:"reference_year,omitempty" json:"reference_year,omitempty" toml:"reference_year,omitempty"`
	StartBalance  decimal.Decimal      `yaml:"start_balance,omitempty" json:"start_balance,omitempty" toml:"start_balance,omitempty"`
	ServiceCredit *ServiceCreditWindow `yaml:"service_credit,omitempty" json:"service_credit,omitempty" toml:"service_credit,omitempty"`
}

// Year returns the reference year, defaulting to DefaultReferenceYear
func (p AccumulationPlan) Year() int {
	if p.ReferenceYear == 0 {
		return DefaultReferenceYear
	}
	return p.ReferenceYear
}

// Window returns the configured service credit window or the default one
func (p AccumulationPlan) Window() ServiceCreditWindow {
	if p.ServiceCredit == nil {
		return DefaultServiceCreditWindow()
	}
	return *p.ServiceCredit
}

// LumpSumPlan compares taking a lump sum against leaving a balance invested
// and drawing annual payments.
type LumpSumPlan struct {
	LumpSumAmount   decimal.Decimal `yaml:"lump_sum_amount" json:"lump_sum_amount" toml:"lump_sum_amount"`
	StartingBalance decimal.Decimal `yaml:"starting_balance" json:"starting_balance" toml:"starting_balance"`
	AnnualPayment   decimal.Decimal `yaml:"annual_payment" json:"annual_payment" toml:"annual_payment"`
	ReturnRate      decimal.Decimal `yaml:"return_rate" json:"return_rate" toml:"return_rate"`
	TaxRate         decimal.Decimal `yaml:"tax_rate" json:"tax_rate" toml:"tax_rate"`
	DiscountRate    decimal.Decimal `yaml:"discount_rate" json:"discount_rate" toml:"discount_rate"`
	Years           int             `yaml:"years" json:"years" toml:"years"`
}

// SharePlan is the input of the share plan accumulation calculator
type SharePlan struct {
	StartYear     int             `yaml:"start_year" json:"start_year" toml:"start_year"`
	EndYear       int             `yaml:"end_year" json:"end_year" toml:"end_year"`
	SharesPerYear decimal.Decimal `yaml:"shares_per_year" json:"shares_per_year" toml:"shares_per_year"`
	SharePrice    decimal.Decimal `yaml:"share_price" json:"share_price" toml:"share_price"`
	TaxRate       decimal.Decimal `yaml:"tax_rate" json:"tax_rate" toml:"tax_rate"`
	GrowthRate    decimal.Decimal `yaml:"growth_rate" json:"growth_rate" toml:"growth_rate"`
}

// COLATiming selects when benefit COLA increases take effect
type COLATiming string

const (
	COLAJanuary  COLATiming = "january"
	COLABirthday COLATiming = "birthday"
)

// Claim is a Social Security claiming age with its starting monthly benefit
type Claim struct {
	Age            int             `yaml:"age" json:"age" toml:"age"`
	MonthlyBenefit decimal.Decimal `yaml:"monthly_benefit" json:"monthly_benefit" toml:"monthly_benefit"`
}

// SocialSecurityPlan is the input of the Social Security breakeven calculator.
// AsOf anchors pre-claim COLA steps; nil means the run date.
type SocialSecurityPlan struct {
	BirthDate  Date            `yaml:"birth_date" json:"birth_date" toml:"birth_date"`
	AsOf       *Date           `yaml:"as_of,omitempty" json:"as_of,omitempty" toml:"as_of,omitempty"`
	ApplyCOLA  bool            `yaml:"apply_cola" json:"apply_cola" toml:"apply_cola"`
	COLARate   decimal.Decimal `yaml:"cola_rate" json:"cola_rate" toml:"cola_rate"`
	COLATiming COLATiming      `yaml:"cola_timing,omitempty" json:"cola_timing,omitempty" toml:"cola_timing,omitempty"`
	PaymentLag bool            `yaml:"payment_lag" json:"payment_lag" toml:"payment_lag"`
	HorizonAge int             `yaml:"horizon_age" json:"horizon_age" toml:"horizon_age"`
	Claims     []Claim         `yaml:"claims" json:"claims" toml:"claims"`
}

// Timing returns the COLA timing, defaulting to january
func (p SocialSecurityPlan) Timing() COLATiming {
	if p.COLATiming == "" {
		return COLAJanuary
	}
	return p.COLATiming
}

// Configuration is a complete input document. Each calculator runs when its
// section is present.
type Configuration struct {
	Buckets        *BucketPlan         `yaml:"buckets,omitempty" json:"buckets,omitempty" toml:"buckets,omitempty"`
	Accumulation   *AccumulationPlan   `yaml:"accumulation,omitempty" json:"accumulation,omitempty" toml:"accumulation,omitempty"`
	LumpSum        *LumpSumPlan        `yaml:"lump_sum,omitempty" json:"lump_sum,omitempty" toml:"lump_sum,omitempty"`
	SharePlan      *SharePlan          `yaml:"share_plan,omitempty" json:"share_plan,omitempty" toml:"share_plan,omitempty"`
	SocialSecurity *SocialSecurityPlan `yaml:"social_security,omitempty" json:"social_security,omitempty" toml:"social_security,omitempty"`
}

// Empty reports whether no calculator section is present
func (c Configuration) Empty() bool {
	return c.Buckets == nil && c.Accumulation == nil && c.LumpSum == nil && c.SharePlan == nil && c.SocialSecurity == nil
}
