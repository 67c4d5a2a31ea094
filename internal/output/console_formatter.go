package output

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rpgo/projection-engine/internal/domain"
)

// ConsoleFormatter renders a human readable summary of every report section.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, errors.New("report is nil")
	}
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PROJECTION REPORT")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Run: %s\n", report.RunID)
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}

	if p := report.Buckets; p != nil {
		section(&buf, "BUCKET PAYOUTS")
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "Year\tAge\t%s\t\n", strings.Join(p.Trace.Buckets, "\t"))
		for _, row := range p.Trace.Rows {
			cells := make([]string, len(row.Balances))
			for i, b := range row.Balances {
				cells[i] = "-"
				if b != nil {
					cells[i] = FormatCurrency(*b)
				}
			}
			fmt.Fprintf(tw, "%d\t%d\t%s\t\n", row.Year, row.Age, strings.Join(cells, "\t"))
		}
		tw.Flush()
		fmt.Fprintln(&buf)
		for _, po := range p.Payouts {
			fmt.Fprintf(&buf, "%s pays out in %d: %s\n", po.Bucket, po.PayoutYear, FormatCurrency(po.Amount))
		}
		fmt.Fprintf(&buf, "Total payout: %s\n", FormatCurrency(p.TotalPayout()))
	}

	if f := report.Accumulation; f != nil {
		section(&buf, "CONTRIBUTION ACCUMULATION")
		fmt.Fprintf(&buf, "Age at reference date: %d  Rule of 55 score: %d  Extra credit: %s\n",
			f.ReferenceAge, f.EligibilityScore, yesNo(f.ServiceCreditEligible))
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Year\tAge\tService\tSalary\tRate\tExtra\tContribution\tBalance\t")
		for _, r := range f.Rows {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
				r.Year, r.Age, r.ServiceYears,
				FormatCurrency(r.Salary),
				FormatPercentage(r.ContributionRate),
				FormatPercentage(r.ExtraRate),
				FormatCurrency(r.TotalContribution),
				FormatCurrency(r.Balance))
		}
		tw.Flush()
		fmt.Fprintf(&buf, "Final balance: %s\n", FormatCurrency(f.FinalBalance))
	}

	if c := report.LumpSum; c != nil {
		section(&buf, "LUMP SUM VS ANNUAL PAYMENTS")
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Year\tStart\tPayment\tNet Gain\tEnd\tPresent Value\t")
		for _, r := range c.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
				r.Year,
				FormatCurrency(r.StartBalance),
				FormatCurrency(r.Payment),
				FormatCurrency(r.NetGain),
				FormatCurrency(r.EndBalance),
				FormatCurrency(r.PresentValue))
		}
		tw.Flush()
		fmt.Fprintf(&buf, "Present value of remaining balance: %s\n", FormatCurrency(c.PresentValue))
		if c.AnnualPaymentsFavored {
			fmt.Fprintln(&buf, "Recommendation: take the lump sum and draw annual payments")
		} else {
			fmt.Fprintln(&buf, "Recommendation: the invested lump sum does not cover the payments")
		}
	}

	if s := report.SharePlan; s != nil {
		section(&buf, "SHARE PLAN")
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Year\tShares\tPrice\tGross\tNet\tAccumulated\t")
		for _, r := range s.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
				r.Year, r.Shares.String(),
				FormatCurrency(r.SharePrice),
				FormatCurrency(r.GrossValue),
				FormatCurrency(r.NetValue),
				FormatCurrency(r.AccumulatedValue))
		}
		tw.Flush()
		fmt.Fprintf(&buf, "Final value: %s\n", FormatCurrency(s.FinalValue))
	}

	if a := report.SocialSecurity; a != nil {
		section(&buf, "SOCIAL SECURITY BREAKEVEN")
		for _, t := range a.Totals {
			fmt.Fprintf(&buf, "%s (age %d) total to %d: %s\n", t.Claim, t.ClaimAge, a.HorizonAge, FormatCurrency(t.Total))
		}
		fmt.Fprintln(&buf)
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprint(tw, "Age\t")
		for _, age := range a.ClaimAges {
			fmt.Fprintf(tw, "Claim %d\t", age)
		}
		fmt.Fprintln(tw)
		for _, y := range a.Yearly {
			fmt.Fprintf(tw, "%d\t", y.Age)
			for _, v := range y.Totals {
				fmt.Fprintf(tw, "%s\t", FormatCurrency(v))
			}
			fmt.Fprintln(tw)
		}
		tw.Flush()
		fmt.Fprintln(&buf)
		for _, b := range a.Breakevens {
			month := "none"
			if b.Month != nil {
				month = b.Month.Format("Jan 2006")
			}
			fmt.Fprintf(&buf, "%s: breakeven %s (age %s)\n", b.Pair, month, b.Age)
		}
	}
	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", len(title)))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
