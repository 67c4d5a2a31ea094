package calculation

import (
	"context"

	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SimulateBucket advances a bucket from the plan's start year through the
// given year inclusive. It never steps into the bucket's payout year.
func SimulateBucket(plan domain.BucketPlan, bucket domain.Bucket, through int) decimal.Decimal {
	balance := bucket.StartingBalance
	rule := NewContributionRule(plan, bucket)
	age := plan.CurrentAge

	for year := plan.StartYear; year <= through && year < bucket.PayoutYear; year++ {
		phase := ResolvePhase(age, plan.RetirementAge)
		rate := ResolveRate(plan, bucket, phase)
		if phase == PhaseActive {
			balance = StepActive(balance, rule.Next(), rate)
		} else {
			balance = StepRunoff(balance, rate)
		}
		age++
	}
	return balance
}

// BucketPayout returns the balance a bucket pays out in its payout year
func BucketPayout(plan domain.BucketPlan, bucket domain.Bucket) decimal.Decimal {
	return SimulateBucket(plan, bucket, bucket.PayoutYear-1)
}

// bucketColumn re-simulates a bucket independently for every trace year.
func bucketColumn(ctx context.Context, plan domain.BucketPlan, bucket domain.Bucket, end int) ([]*decimal.Decimal, error) {
	column := make([]*decimal.Decimal, 0, max(0, end-plan.StartYear))
	for year := plan.StartYear; year < end; year++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if year >= bucket.PayoutYear {
			column = append(column, nil)
			continue
		}
		balance := SimulateBucket(plan, bucket, year)
		column = append(column, &balance)
	}
	return column, nil
}

// ProjectBuckets builds the year-by-year trace and the payout list for a plan.
// Buckets are independent, so their columns are computed concurrently.
func (ce *CalculationEngine) ProjectBuckets(ctx context.Context, plan domain.BucketPlan) (*domain.BucketProjection, error) {
	end := plan.HorizonEnd()
	ce.logger().Debugf("projecting %d buckets over [%d, %d)", len(plan.Buckets), plan.StartYear, end)

	columns := make([][]*decimal.Decimal, len(plan.Buckets))
	g, gctx := errgroup.WithContext(ctx)
	limit := ce.Parallelism
	if limit <= 0 {
		limit = DefaultParallelism
	}
	g.SetLimit(limit)
	for i, bucket := range plan.Buckets {
		i, bucket := i, bucket // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			column, err := bucketColumn(gctx, plan, bucket, end)
			if err != nil {
				return err
			}
			columns[i] = column
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	projection := &domain.BucketProjection{
		StartYear:  plan.StartYear,
		HorizonEnd: end,
		Trace:      domain.Trace{Buckets: make([]string, len(plan.Buckets))},
		Payouts:    make([]domain.Payout, len(plan.Buckets)),
	}
	for i, bucket := range plan.Buckets {
		projection.Trace.Buckets[i] = bucket.Name
		projection.Payouts[i] = domain.Payout{
			Bucket:     bucket.Name,
			PayoutYear: bucket.PayoutYear,
			Amount:     BucketPayout(plan, bucket),
		}
	}
	for year := plan.StartYear; year < end; year++ {
		row := domain.TraceRow{
			Year:     year,
			Age:      plan.AgeIn(year),
			Balances: make([]*decimal.Decimal, len(plan.Buckets)),
		}
		for i := range plan.Buckets {
			row.Balances[i] = columns[i][year-plan.StartYear]
		}
		projection.Trace.Rows = append(projection.Trace.Rows, row)
	}
	return projection, nil
}
