package calculation

import (
	"testing"

	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulateSharePlan(t *testing.T) {
	plan := domain.SharePlan{
		StartYear:     2032,
		EndYear:       2033,
		SharesPerYear: dec("100"),
		SharePrice:    dec("10"),
		TaxRate:       dec("0.2"),
		GrowthRate:    dec("0.1"),
	}
	result := NewCalculationEngine().AccumulateSharePlan(plan)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 2032, result.Rows[0].Year)
	assert.Equal(t, "1000", result.Rows[0].GrossValue.String())
	assert.Equal(t, "800", result.Rows[0].NetValue.String())
	assert.Equal(t, "880", result.Rows[0].AccumulatedValue.String())
	assert.Equal(t, "1848", result.Rows[1].AccumulatedValue.String())
	assert.Equal(t, "1848", result.FinalValue.String())
}

func TestAccumulateSharePlan_Bounds(t *testing.T) {
	single := domain.SharePlan{StartYear: 2040, EndYear: 2040, SharesPerYear: dec("1"), SharePrice: dec("1"), TaxRate: dec("0"), GrowthRate: dec("0")}
	result := NewCalculationEngine().AccumulateSharePlan(single)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "1", result.FinalValue.String())

	empty := single
	empty.EndYear = 2039
	result = NewCalculationEngine().AccumulateSharePlan(empty)
	assert.Empty(t, result.Rows)
	assert.True(t, result.FinalValue.IsZero())
}
