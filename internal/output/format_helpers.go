package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	moneyutil "github.com/rpgo/projection-engine/pkg/decimal"
)

// FormatCurrency formats a decimal as grouped USD with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return moneyutil.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a fractional rate as a percentage with 2 decimals.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Shift(2).StringFixed(2) + "%"
}

// moneyCell renders an amount for tabular export
func moneyCell(amount decimal.Decimal) string { return amount.StringFixed(2) }

// optionalMoneyCell renders an empty cell for nil
func optionalMoneyCell(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return moneyCell(*amount)
}

func intToString(v int) string { return strconv.Itoa(v) }
