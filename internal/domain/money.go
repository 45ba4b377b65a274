// internal/domain/money.go
package domain

import "github.com/shopspring/decimal"

// FormatCents renders an integer cents amount as a fixed two-decimal
// display string, e.g. 12550 -> "125.50". All arithmetic in the model stays
// on integer cents; this is presentation only.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
