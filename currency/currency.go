// currency/currency.go

// Package currency holds currency definitions, the concurrent registry that
// stores them, and the mappings that resolve caller tokens to a registered
// currency.
package currency

import (
	"fmt"

	"github.com/dalemusser/amountwords/grammar"
)

// Currency is a currency together with the noun forms of its major (integer)
// and minor (fraction) units. Two currencies are equal when their codes match.
type Currency struct {
	// Code is the numeric identifier, ISO 4217 for the built-ins.
	Code int    `json:"code" yaml:"code" validate:"required,gt=0"`
	Name string `json:"name" yaml:"name" validate:"required"`

	Integer  grammar.Forms `json:"integer" yaml:"integer"`
	Fraction grammar.Forms `json:"fraction" yaml:"fraction"`

	// SpellZeroFraction writes the zero word before the fraction noun when
	// there are no minor units ("zero cents").
	SpellZeroFraction bool `json:"spell_zero_fraction" yaml:"spell_zero_fraction"`
}

// Equal reports whether c and o share a code.
func (c Currency) Equal(o Currency) bool {
	return c.Code == o.Code
}

// String returns "code:name", e.g. "980:UAH".
func (c Currency) String() string {
	return fmt.Sprintf("%d:%s", c.Code, c.Name)
}
