// grammar/plural.go
package grammar

import "github.com/dalemusser/amountwords/numeral"

// PluralForm represents a plural category.
type PluralForm string

const (
	PluralOne   PluralForm = "one"
	PluralFew   PluralForm = "few"
	PluralMany  PluralForm = "many"
	PluralOther PluralForm = "other"
)

// Agreement selects the noun form that agrees with a group value 0..999.
type Agreement func(n int) PluralForm

// ThreeWay handles East Slavic numeral agreement.
// many: last two digits 11..19 (teens always take the genitive plural)
// one: last digit 1
// few: last digit 2..4
// many: everything else, including 0
func ThreeWay(n int) PluralForm {
	d := numeral.Decompose(n)
	if d.Teen() {
		return PluralMany
	}

	switch d.Units {
	case 1:
		return PluralOne
	case 2, 3, 4:
		return PluralFew
	default:
		return PluralMany
	}
}

// TwoWay handles English-style agreement.
// other: last two digits 11..19
// one: last digit 1
// other: everything else
//
// Only the last two digits are inspected, so 21 takes the singular.
func TwoWay(n int) PluralForm {
	d := numeral.Decompose(n)
	if d.Teen() {
		return PluralOther
	}
	if d.Units == 1 {
		return PluralOne
	}
	return PluralOther
}
