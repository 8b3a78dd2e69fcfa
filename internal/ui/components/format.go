package components

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Number formats n with thousands separators, e.g. 12,500.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent formats a 0..100 score with one decimal.
func Percent(score float64) string {
	return printer.Sprintf("%.1f%%", score)
}
