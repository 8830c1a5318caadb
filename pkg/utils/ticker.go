package utils

import (
	"strings"
)

// NormalizeTicker uppercases and trims a user-supplied ticker. A leading $
// (common in chat input) is dropped.
func NormalizeTicker(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	return strings.TrimPrefix(ticker, "$")
}

// ToYahooSymbol converts a ticker to Yahoo Finance's symbol format.
// Class shares use a dash there: BRK.B becomes BRK-B.
func ToYahooSymbol(ticker string) string {
	return strings.ReplaceAll(NormalizeTicker(ticker), ".", "-")
}

// FromYahooSymbol converts a Yahoo symbol back to the dotted class form.
func FromYahooSymbol(symbol string) string {
	return strings.ReplaceAll(strings.ToUpper(symbol), "-", ".")
}
