package output

import (
	"fmt"

	"github.com/rpgo/projection-engine/internal/domain"
)

// Table names, also used as CSV file stems by ExportCSV
const (
	TableYearlyBalances = "yearly_balances"
	TableBucketPayouts  = "bucket_payouts"
	TableAccumulation   = "accumulation"
	TableLumpSumAudit   = "lump_sum_audit"
	TableSharePlan      = "share_plan"
	TableSSTotals       = "ss_totals"
	TableSSYearly       = "ss_yearly"
	TableSSBreakeven    = "ss_breakeven"
)

// Table is a flat rendering of one report section. Header holds field names.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// BuildTables flattens every section present in the report, in a fixed order.
func BuildTables(report *domain.Report) []Table {
	if report == nil {
		return nil
	}
	var tables []Table
	if p := report.Buckets; p != nil {
		tables = append(tables, yearlyBalancesTable(p), bucketPayoutsTable(p))
	}
	if f := report.Accumulation; f != nil {
		tables = append(tables, accumulationTable(f))
	}
	if c := report.LumpSum; c != nil {
		tables = append(tables, lumpSumTable(c))
	}
	if s := report.SharePlan; s != nil {
		tables = append(tables, sharePlanTable(s))
	}
	if a := report.SocialSecurity; a != nil {
		tables = append(tables, ssTotalsTable(a), ssYearlyTable(a), ssBreakevenTable(a))
	}
	return tables
}

func yearlyBalancesTable(p *domain.BucketProjection) Table {
	header := append([]string{"year", "age"}, p.Trace.Buckets...)
	rows := make([][]string, 0, len(p.Trace.Rows))
	for _, tr := range p.Trace.Rows {
		row := []string{intToString(tr.Year), intToString(tr.Age)}
		for _, b := range tr.Balances {
			row = append(row, optionalMoneyCell(b))
		}
		rows = append(rows, row)
	}
	return Table{Name: TableYearlyBalances, Header: header, Rows: rows}
}

func bucketPayoutsTable(p *domain.BucketProjection) Table {
	rows := make([][]string, 0, len(p.Payouts))
	for _, po := range p.Payouts {
		rows = append(rows, []string{po.Bucket, intToString(po.PayoutYear), moneyCell(po.Amount)})
	}
	return Table{
		Name:   TableBucketPayouts,
		Header: []string{"bucket", "payout_year", "payout_amount"},
		Rows:   rows,
	}
}

func accumulationTable(f *domain.AccumulationForecast) Table {
	rows := make([][]string, 0, len(f.Rows))
	for _, r := range f.Rows {
		rows = append(rows, []string{
			intToString(r.Year),
			intToString(r.Age),
			intToString(r.ServiceYears),
			moneyCell(r.Salary),
			r.ContributionRate.String(),
			r.ExtraRate.String(),
			moneyCell(r.RegularAmount),
			moneyCell(r.ExtraAmount),
			moneyCell(r.TotalContribution),
			moneyCell(r.Balance),
		})
	}
	return Table{
		Name: TableAccumulation,
		Header: []string{
			"year", "age", "service_years", "salary", "contribution_rate", "extra_rate",
			"regular_amount", "extra_amount", "total_contribution", "balance",
		},
		Rows: rows,
	}
}

func lumpSumTable(c *domain.LumpSumComparison) Table {
	rows := make([][]string, 0, len(c.Rows))
	for _, r := range c.Rows {
		rows = append(rows, []string{
			intToString(r.Year),
			moneyCell(r.StartBalance),
			moneyCell(r.Payment),
			moneyCell(r.GrossGain),
			moneyCell(r.Tax),
			moneyCell(r.NetGain),
			moneyCell(r.EndBalance),
			moneyCell(r.PresentValue),
		})
	}
	return Table{
		Name: TableLumpSumAudit,
		Header: []string{
			"year", "start_balance", "payment", "gross_gain", "tax", "net_gain", "end_balance", "present_value",
		},
		Rows: rows,
	}
}

func sharePlanTable(s *domain.SharePlanAccumulation) Table {
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []string{
			intToString(r.Year),
			r.Shares.String(),
			moneyCell(r.SharePrice),
			moneyCell(r.GrossValue),
			moneyCell(r.NetValue),
			moneyCell(r.AccumulatedValue),
		})
	}
	return Table{
		Name:   TableSharePlan,
		Header: []string{"year", "shares", "share_price", "gross_value", "net_value", "accumulated_value"},
		Rows:   rows,
	}
}

func ssTotalsTable(a *domain.BreakevenAnalysis) Table {
	rows := make([][]string, 0, len(a.Totals))
	for _, t := range a.Totals {
		rows = append(rows, []string{t.Claim, intToString(t.ClaimAge), moneyCell(t.Total)})
	}
	return Table{
		Name:   TableSSTotals,
		Header: []string{"claim", "claim_age", fmt.Sprintf("total_to_%d", a.HorizonAge)},
		Rows:   rows,
	}
}

func ssYearlyTable(a *domain.BreakevenAnalysis) Table {
	header := []string{"age"}
	for _, age := range a.ClaimAges {
		header = append(header, fmt.Sprintf("claim_%d", age))
	}
	rows := make([][]string, 0, len(a.Yearly))
	for _, y := range a.Yearly {
		row := []string{intToString(y.Age)}
		for _, v := range y.Totals {
			row = append(row, moneyCell(v))
		}
		rows = append(rows, row)
	}
	return Table{Name: TableSSYearly, Header: header, Rows: rows}
}

func ssBreakevenTable(a *domain.BreakevenAnalysis) Table {
	rows := make([][]string, 0, len(a.Breakevens))
	for _, b := range a.Breakevens {
		month := ""
		if b.Month != nil {
			month = b.Month.String()
		}
		rows = append(rows, []string{b.Pair, month, b.Age})
	}
	return Table{
		Name:   TableSSBreakeven,
		Header: []string{"pair", "breakeven_month", "breakeven_age"},
		Rows:   rows,
	}
}
