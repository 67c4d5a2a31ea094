package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	calc "github.com/rpgo/projection-engine/internal/calculation"
	"github.com/rpgo/projection-engine/internal/config"
	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/rpgo/projection-engine/pkg/dateutil"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	plan := cfg.SocialSecurity
	if plan == nil || len(plan.Claims) < 2 {
		fmt.Println("need a social_security section with at least two claims")
		return
	}

	claims := append([]domain.Claim(nil), plan.Claims...)
	sort.Slice(claims, func(i, j int) bool { return claims[i].Age < claims[j].Age })
	asOf := time.Now().UTC()
	if plan.AsOf != nil {
		asOf = plan.AsOf.Time
	}

	a := calc.BuildBenefitSeries(*plan, claims[0], asOf)
	b := calc.BuildBenefitSeries(*plan, claims[1], asOf)
	periods, cumA, cumB := calc.AlignSeries(calc.MonthlySeries(a), calc.MonthlySeries(b))

	fmt.Printf("Index,Month,Claim%d,Claim%d,Diff\n", a.ClaimAge, b.ClaimAge)
	for i, period := range periods {
		month := dateutil.MonthFromIndex(period)
		fmt.Printf("%d,%s,%s,%s,%s\n", i, month.Format("2006-01"), cumA[i].StringFixed(2), cumB[i].StringFixed(2), cumA[i].Sub(cumB[i]).StringFixed(2))
	}

	period, ok := calc.FindBreakeven(calc.MonthlySeries(a), calc.MonthlySeries(b))
	if !ok {
		fmt.Printf("\nBreakEven: %s\n", calc.NoBreakevenLabel)
		return
	}
	month := dateutil.MonthFromIndex(period)
	fmt.Printf("\nBreakEven: %s (age %s)\n", month.Format("2006-01"), dateutil.FormatAgeYM(plan.BirthDate.Time, month))
}
