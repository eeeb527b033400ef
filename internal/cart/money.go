package cart

import "github.com/shopspring/decimal"

// FormatAmount renders an amount with two decimals. Rounding happens here
// and nowhere else.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// ExactTotal sums lines in decimal arithmetic, for comparing against a
// client-declared total.
func ExactTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
