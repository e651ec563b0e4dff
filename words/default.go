// words/default.go
package words

import (
	"github.com/dalemusser/amountwords/currency"
	"github.com/shopspring/decimal"
)

var std = New()

// Default returns the process-wide engine used by the package functions.
func Default() *Engine {
	return std
}

// RegisterCurrency adds c to the default registry.
func RegisterCurrency(c currency.Currency) error {
	return std.RegisterCurrency(c)
}

// UnregisterCurrency removes c from the default registry.
func UnregisterCurrency(c currency.Currency) bool {
	return std.UnregisterCurrency(c)
}

// ListCurrencies returns a snapshot of the default registry.
func ListCurrencies() []currency.Currency {
	return std.ListCurrencies()
}

// Mapping returns the default engine's mapping.
func Mapping() currency.Mapping {
	return std.Mapping()
}

// SetMapping replaces the default engine's mapping; nil restores identity.
func SetMapping(m currency.Mapping) {
	std.SetMapping(m)
}

// Format formats with the default engine.
func Format(amount int64, token any, lang string) (string, error) {
	return std.Format(amount, token, lang)
}

// FormatDecimal formats a major-unit decimal with the default engine.
func FormatDecimal(d decimal.Decimal, token any, lang string) (string, error) {
	return std.FormatDecimal(d, token, lang)
}
