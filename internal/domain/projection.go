package domain

import (
	"time"

	"github.com/shopspring/decimal"

	moneyutil "github.com/rpgo/projection-engine/pkg/decimal"
)

// TraceRow is one period of a bucket trace. Balances align with Trace.Buckets;
// a nil entry marks a bucket at or past its payout year.
type TraceRow struct {
	Year     int                `json:"year"`
	Age      int                `json:"age"`
	Balances []*decimal.Decimal `json:"balances"`
}

// Trace is the per-period balance table of a bucket projection
type Trace struct {
	Buckets []string   `json:"buckets"`
	Rows    []TraceRow `json:"rows"`
}

// Balance looks up a bucket's value in a row
func (t Trace) Balance(row int, bucket string) *decimal.Decimal {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	for i, name := range t.Buckets {
		if name == bucket {
			return t.Rows[row].Balances[i]
		}
	}
	return nil
}

// Payout is a bucket's balance at its payout year
type Payout struct {
	Bucket     string          `json:"bucket"`
	PayoutYear int             `json:"payout_year"`
	Amount     decimal.Decimal `json:"amount"`
}

// BucketProjection is the output of the bucket payout calculator
type BucketProjection struct {
	StartYear  int      `json:"start_year"`
	HorizonEnd int      `json:"horizon_end"`
	Trace      Trace    `json:"trace"`
	Payouts    []Payout `json:"payouts"`
}

// TotalPayout sums all bucket payouts
func (p BucketProjection) TotalPayout() decimal.Decimal {
	total := decimal.Zero
	for _, po := range p.Payouts {
		total = total.Add(po.Amount)
	}
	return total
}

// Rounded returns a copy with every amount rounded to cents
func (p BucketProjection) Rounded() BucketProjection {
	out := p
	out.Trace.Buckets = append([]string(nil), p.Trace.Buckets...)
	out.Trace.Rows = make([]TraceRow, len(p.Trace.Rows))
	for i, row := range p.Trace.Rows {
		balances := make([]*decimal.Decimal, len(row.Balances))
		for j, b := range row.Balances {
			balances[j] = moneyutil.RoundCentsPtr(b)
		}
		out.Trace.Rows[i] = TraceRow{Year: row.Year, Age: row.Age, Balances: balances}
	}
	out.Payouts = make([]Payout, len(p.Payouts))
	for i, po := range p.Payouts {
		po.Amount = moneyutil.RoundCents(po.Amount)
		out.Payouts[i] = po
	}
	return out
}

// AccumulationRow is one year of a contribution accumulation forecast
type AccumulationRow struct {
	Year              int             `json:"year"`
	Age               int             `json:"age"`
	ServiceYears      int             `json:"service_years"`
	Salary            decimal.Decimal `json:"salary"`
	ContributionRate  decimal.Decimal `json:"contribution_rate"`
	ExtraRate         decimal.Decimal `json:"extra_rate"`
	RegularAmount     decimal.Decimal `json:"regular_amount"`
	ExtraAmount       decimal.Decimal `json:"extra_amount"`
	TotalContribution decimal.Decimal `json:"total_contribution"`
	Balance           decimal.Decimal `json:"balance"`
}

// AccumulationForecast is the output of the contribution accumulation calculator
type AccumulationForecast struct {
	ReferenceAge          int               `json:"reference_age"`
	ServiceCreditEligible bool              `json:"service_credit_eligible"`
	EligibilityScore      int               `json:"eligibility_score"`
	Rows                  []AccumulationRow `json:"rows"`
	FinalBalance          decimal.Decimal   `json:"final_balance"`
}

// Rounded returns a copy with every amount rounded to cents
func (f AccumulationForecast) Rounded() AccumulationForecast {
	out := f
	out.Rows = make([]AccumulationRow, len(f.Rows))
	for i, r := range f.Rows {
		r.Salary = moneyutil.RoundCents(r.Salary)
		r.RegularAmount = moneyutil.RoundCents(r.RegularAmount)
		r.ExtraAmount = moneyutil.RoundCents(r.ExtraAmount)
		r.TotalContribution = moneyutil.RoundCents(r.TotalContribution)
		r.Balance = moneyutil.RoundCents(r.Balance)
		out.Rows[i] = r
	}
	out.FinalBalance = moneyutil.RoundCents(f.FinalBalance)
	return out
}

// LumpSumRow is one year of the invested-balance audit trail
type LumpSumRow struct {
	Year         int             `json:"year"`
	StartBalance decimal.Decimal `json:"start_balance"`
	Payment      decimal.Decimal `json:"payment"`
	GrossGain    decimal.Decimal `json:"gross_gain"`
	Tax          decimal.Decimal `json:"tax"`
	NetGain      decimal.Decimal `json:"net_gain"`
	EndBalance   decimal.Decimal `json:"end_balance"`
	PresentValue decimal.Decimal `json:"present_value"`
}

// LumpSumComparison is the output of the lump sum calculator
type LumpSumComparison struct {
	LumpSumAmount         decimal.Decimal `json:"lump_sum_amount"`
	Rows                  []LumpSumRow    `json:"rows"`
	FinalBalance          decimal.Decimal `json:"final_balance"`
	PresentValue          decimal.Decimal `json:"present_value"`
	AnnualPaymentsFavored bool            `json:"annual_payments_favored"`
}

// Rounded returns a copy with every amount rounded to cents
func (c LumpSumComparison) Rounded() LumpSumComparison {
	out := c
	out.Rows = make([]LumpSumRow, len(c.Rows))
	for i, r := range c.Rows {
		r.StartBalance = moneyutil.RoundCents(r.StartBalance)
		r.Payment = moneyutil.RoundCents(r.Payment)
		r.GrossGain = moneyutil.RoundCents(r.GrossGain)
		r.Tax = moneyutil.RoundCents(r.Tax)
		r.NetGain = moneyutil.RoundCents(r.NetGain)
		r.EndBalance = moneyutil.RoundCents(r.EndBalance)
		r.PresentValue = moneyutil.RoundCents(r.PresentValue)
		out.Rows[i] = r
	}
	out.LumpSumAmount = moneyutil.RoundCents(c.LumpSumAmount)
	out.FinalBalance = moneyutil.RoundCents(c.FinalBalance)
	out.PresentValue = moneyutil.RoundCents(c.PresentValue)
	return out
}

// SharePlanRow is one vesting year of a share plan
type SharePlanRow struct {
	Year             int             `json:"year"`
	Shares           decimal.Decimal `json:"shares"`
	SharePrice       decimal.Decimal `json:"share_price"`
	GrossValue       decimal.Decimal `json:"gross_value"`
	NetValue         decimal.Decimal `json:"net_value"`
	AccumulatedValue decimal.Decimal `json:"accumulated_value"`
}

// SharePlanAccumulation is the output of the share plan calculator
type SharePlanAccumulation struct {
	Rows       []SharePlanRow  `json:"rows"`
	FinalValue decimal.Decimal `json:"final_value"`
}

// Rounded returns a copy with every amount rounded to cents
func (s SharePlanAccumulation) Rounded() SharePlanAccumulation {
	out := s
	out.Rows = make([]SharePlanRow, len(s.Rows))
	for i, r := range s.Rows {
		r.GrossValue = moneyutil.RoundCents(r.GrossValue)
		r.NetValue = moneyutil.RoundCents(r.NetValue)
		r.AccumulatedValue = moneyutil.RoundCents(r.AccumulatedValue)
		out.Rows[i] = r
	}
	out.FinalValue = moneyutil.RoundCents(s.FinalValue)
	return out
}

// BenefitPoint is the cumulative benefit received through a payment month
type BenefitPoint struct {
	Month      Date            `json:"month"`
	Payment    decimal.Decimal `json:"payment"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// BenefitSeries is the monthly payment stream for one claiming age
type BenefitSeries struct {
	ClaimAge        int             `json:"claim_age"`
	StartingMonthly decimal.Decimal `json:"starting_monthly"`
	Points          []BenefitPoint  `json:"points,omitempty"`
}

// Total returns the final cumulative value, zero for an empty series
func (s BenefitSeries) Total() decimal.Decimal {
	if len(s.Points) == 0 {
		return decimal.Zero
	}
	return s.Points[len(s.Points)-1].Cumulative
}

// ClaimTotal is the lifetime total for a claim age through the horizon
type ClaimTotal struct {
	Claim    string          `json:"claim"`
	ClaimAge int             `json:"claim_age"`
	Total    decimal.Decimal `json:"total"`
}

// CumulativeAtAge holds cumulative totals per claim age just before a birthday.
// Totals align with BreakevenAnalysis.ClaimAges.
type CumulativeAtAge struct {
	Age    int               `json:"age"`
	Totals []decimal.Decimal `json:"totals"`
}

// BreakevenPair is the first crossing of two claim strategies. Month is nil
// when the series never cross.
type BreakevenPair struct {
	Pair  string `json:"pair"`
	Month *Date  `json:"month,omitempty"`
	Age   string `json:"age"`
}

// BreakevenAnalysis is the output of the Social Security calculator
type BreakevenAnalysis struct {
	HorizonAge int               `json:"horizon_age"`
	ClaimAges  []int             `json:"claim_ages"`
	Series     []BenefitSeries   `json:"series"`
	Totals     []ClaimTotal      `json:"totals"`
	Yearly     []CumulativeAtAge `json:"yearly"`
	Breakevens []BreakevenPair   `json:"breakevens"`
}

// Rounded returns a copy with every amount rounded to cents
func (a BreakevenAnalysis) Rounded() BreakevenAnalysis {
	out := a
	out.Series = make([]BenefitSeries, len(a.Series))
	for i, s := range a.Series {
		points := make([]BenefitPoint, len(s.Points))
		for j, p := range s.Points {
			points[j] = BenefitPoint{Month: p.Month, Payment: moneyutil.RoundCents(p.Payment), Cumulative: moneyutil.RoundCents(p.Cumulative)}
		}
		s.Points = points
		s.StartingMonthly = moneyutil.RoundCents(s.StartingMonthly)
		out.Series[i] = s
	}
	out.Totals = make([]ClaimTotal, len(a.Totals))
	for i, t := range a.Totals {
		t.Total = moneyutil.RoundCents(t.Total)
		out.Totals[i] = t
	}
	out.Yearly = make([]CumulativeAtAge, len(a.Yearly))
	for i, y := range a.Yearly {
		totals := make([]decimal.Decimal, len(y.Totals))
		for j, v := range y.Totals {
			totals[j] = moneyutil.RoundCents(v)
		}
		out.Yearly[i] = CumulativeAtAge{Age: y.Age, Totals: totals}
	}
	return out
}

// Report bundles the results of every calculator present in a configuration
type Report struct {
	RunID          string                 `json:"run_id"`
	GeneratedAt    time.Time              `json:"generated_at"`
	Buckets        *BucketProjection      `json:"buckets,omitempty"`
	Accumulation   *AccumulationForecast  `json:"accumulation,omitempty"`
	LumpSum        *LumpSumComparison     `json:"lump_sum,omitempty"`
	SharePlan      *SharePlanAccumulation `json:"share_plan,omitempty"`
	SocialSecurity *BreakevenAnalysis     `json:"social_security,omitempty"`
}

// Rounded returns a copy of the report with every amount rounded to cents
func (r Report) Rounded() Report {
	out := Report{RunID: r.RunID, GeneratedAt: r.GeneratedAt}
	if r.Buckets != nil {
		v := r.Buckets.Rounded()
		out.Buckets = &v
	}
	if r.Accumulation != nil {
		v := r.Accumulation.Rounded()
		out.Accumulation = &v
	}
	if r.LumpSum != nil {
		v := r.LumpSum.Rounded()
		out.LumpSum = &v
	}
	if r.SharePlan != nil {
		v := r.SharePlan.Rounded()
		out.SharePlan = &v
	}
	if r.SocialSecurity != nil {
		v := r.SocialSecurity.Rounded()
		out.SocialSecurity = &v
	}
	return out
}
