package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromDecimal(t *testing.T) {
	d := stddec.RequireFromString("12.345")
	m := NewMoneyFromDecimal(d)
	assert.True(t, m.Decimal.Equal(d))
	assert.Equal(t, "12.35", m.String())
}

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.355", "2.36"},
		{"47913.075", "47913.08"},
		{"-1.005", "-1.01"},
	}
	for _, c := range cases {
		d, err := stddec.NewFromString(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.out, RoundCents(d).String(), "round(%s)", c.in)
	}
}

func TestGroupedAndFormat(t *testing.T) {
	cases := []struct {
		in      string
		grouped string
		format  string
	}{
		{"0", "0.00", "$0.00"},
		{"999.5", "999.50", "$999.50"},
		{"1000", "1,000.00", "$1,000.00"},
		{"1234567.891", "1,234,567.89", "$1,234,567.89"},
		{"-45631.5", "-45,631.50", "-$45,631.50"},
	}
	for _, c := range cases {
		m := NewMoneyFromDecimal(stddec.RequireFromString(c.in))
		assert.Equal(t, c.grouped, m.Grouped())
		assert.Equal(t, c.format, m.Format())
	}
}

func TestCompound(t *testing.T) {
	got := Compound(stddec.NewFromInt(5000), stddec.RequireFromString("0.03"), 2)
	assert.True(t, got.Equal(stddec.RequireFromString("5304.5")), got.String())

	zero := Compound(stddec.NewFromInt(100), stddec.Zero, 40)
	assert.True(t, zero.Equal(stddec.NewFromInt(100)))

	none := Compound(stddec.NewFromInt(100), stddec.RequireFromString("0.5"), 0)
	assert.True(t, none.Equal(stddec.NewFromInt(100)))
}

func TestRoundCentsPtr(t *testing.T) {
	assert.Nil(t, RoundCentsPtr(nil))
	v := stddec.RequireFromString("10.005")
	assert.Equal(t, "10.01", RoundCentsPtr(&v).StringFixed(2))
}
