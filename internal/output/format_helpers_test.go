package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"1234.567":  "$1,234.57",
		"0":         "$0.00",
		"-45631.5":  "-$45,631.50",
		"999999.99": "$999,999.99",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCurrency(decimal.RequireFromString(in)), in)
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "5.50%", FormatPercentage(decimal.RequireFromString("0.055")))
	assert.Equal(t, "4.00%", FormatPercentage(decimal.RequireFromString("0.04")))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}

func TestCells(t *testing.T) {
	assert.Equal(t, "", optionalMoneyCell(nil))
	v := decimal.RequireFromString("10.005")
	assert.Equal(t, "10.01", optionalMoneyCell(&v))
	assert.Equal(t, "42", intToString(42))
}
