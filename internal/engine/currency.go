package engine

import "fmt"

// CurrencyFormatter renders an amount for human-readable insight text. The
// numeric insight thresholds are currency independent; only the display
// string goes through here.
type CurrencyFormatter func(amount float64, currencyCode string) string

// FormatCurrencyPlain is the fallback formatter used when the caller does
// not supply a locale-aware one.
func FormatCurrencyPlain(amount float64, currencyCode string) string {
	return fmt.Sprintf("%.2f %s", amount, currencyCode)
}
