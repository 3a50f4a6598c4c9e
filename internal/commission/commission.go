package commission

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Calculate returns the commission owed on amount at ratePercent,
// rounded to the cent. Rounding is half away from zero
// (decimal.Round), which behaves as round-half-up for the non-negative
// amounts this service handles. The function is pure: callers supply
// the rate explicitly.
func Calculate(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred).Round(2)
}
