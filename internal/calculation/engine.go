package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/projection-engine/internal/domain"
)

// DefaultParallelism bounds concurrent bucket simulations when unset
const DefaultParallelism = 4

// CalculationEngine runs the projection calculators
type CalculationEngine struct {
	// Parallelism bounds how many bucket columns are simulated at once.
	Parallelism int
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Parallelism: DefaultParallelism,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Run executes every calculator whose section is present in the configuration.
// The configuration is expected to be validated already.
func (ce *CalculationEngine) Run(ctx context.Context, config *domain.Configuration) (*domain.Report, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	report := &domain.Report{
		RunID:       runIDFunc(),
		GeneratedAt: nowFunc().UTC(),
	}
	log := ce.logger()
	log.Infof("run %s started", report.RunID)

	if config.Buckets != nil {
		projection, err := ce.ProjectBuckets(ctx, *config.Buckets)
		if err != nil {
			return nil, fmt.Errorf("bucket projection failed: %w", err)
		}
		report.Buckets = projection
	}

	if config.Accumulation != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		forecast := ce.ForecastAccumulation(*config.Accumulation)
		report.Accumulation = &forecast
	}

	if config.LumpSum != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		comparison := ce.CompareLumpSum(*config.LumpSum)
		report.LumpSum = &comparison
	}

	if config.SharePlan != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		acc := ce.AccumulateSharePlan(*config.SharePlan)
		report.SharePlan = &acc
	}

	if config.SocialSecurity != nil {
		analysis, err := ce.AnalyzeSocialSecurity(ctx, *config.SocialSecurity)
		if err != nil {
			return nil, fmt.Errorf("social security analysis failed: %w", err)
		}
		report.SocialSecurity = analysis
	}

	log.Infof("run %s finished", report.RunID)
	return report, nil
}
