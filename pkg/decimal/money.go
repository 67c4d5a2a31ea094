package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// String returns the amount with exactly two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Grouped returns the amount with two decimals and comma thousands separators.
func (m Money) Grouped() string {
	s := m.Decimal.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + "." + frac
}

// Format formats the money amount with a dollar sign and grouping
func (m Money) Format() string {
	if m.Decimal.IsNegative() {
		return "-$" + m.Grouped()[1:]
	}
	return "$" + m.Grouped()
}

// GrowthFactor returns 1 + rate.
func GrowthFactor(rate decimal.Decimal) decimal.Decimal {
	return one.Add(rate)
}

// Compound grows amount by rate for the given number of whole periods.
// Repeated multiplication keeps the result exact for decimal rates.
func Compound(amount, rate decimal.Decimal, periods int) decimal.Decimal {
	factor := GrowthFactor(rate)
	for i := 0; i < periods; i++ {
		amount = amount.Mul(factor)
	}
	return amount
}

// RoundCents rounds a decimal to cents, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundCentsPtr rounds an optional amount, preserving nil.
func RoundCentsPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := RoundCents(*d)
	return &r
}
