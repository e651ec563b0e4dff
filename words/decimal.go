// words/decimal.go
package words

import (
	"fmt"
	"strings"

	"github.com/dalemusser/amountwords/numeral"
	apperrors "github.com/dalemusser/amountwords/pantry/errors"
	"github.com/shopspring/decimal"
)

var minorPerMajor = decimal.NewFromInt(numeral.MinorPerMajor)

// MinorUnits converts a major-unit amount such as 9.05 into minor-unit
// ticks (905). More than two fractional digits is a validation error; the
// value is never rounded.
func MinorUnits(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, apperrors.OutOfRange(fmt.Sprintf("amount %s is negative", d)).
			WithDetail("amount", d.String())
	}

	ticks := d.Mul(minorPerMajor)
	if !ticks.IsInteger() {
		return 0, apperrors.Validation(fmt.Sprintf("amount %s has more than two fractional digits", d)).
			WithDetail("amount", d.String())
	}
	if ticks.GreaterThan(decimal.NewFromInt(numeral.MaxAmount)) {
		return 0, apperrors.OutOfRange(fmt.Sprintf("amount %s exceeds %s", d, MaxDecimal())).
			WithDetail("amount", d.String())
	}
	return ticks.IntPart(), nil
}

// ParseAmount parses a decimal string ("9", "9.5", "2147483647.00") into
// minor-unit ticks.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.Validation(fmt.Sprintf("amount %q is not a decimal number", s)).Wrap(err)
	}
	return MinorUnits(d)
}

// MaxDecimal is numeral.MaxAmount in major units.
func MaxDecimal() decimal.Decimal {
	return decimal.New(numeral.MaxAmount, -2)
}

// ToDecimal converts minor-unit ticks back to a major-unit decimal.
func ToDecimal(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}

// FormatDecimal is Format for a major-unit decimal amount.
func (e *Engine) FormatDecimal(d decimal.Decimal, token any, lang string) (string, error) {
	amount, err := MinorUnits(d)
	if err != nil {
		return "", err
	}
	return e.Format(amount, token, lang)
}
