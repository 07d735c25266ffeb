// Package money formats amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts as currency with exactly two decimal places and
// locale-aware digit grouping.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter constructs a formatter with the given currency symbol.
func NewFormatter(symbol string) *Formatter {
	if symbol == "" {
		symbol = "$"
	}
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// Format renders the amount, e.g. 1234.5 -> "$1,234.50".
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprintf("%s%.2f", f.symbol, amount)
}
