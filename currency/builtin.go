// currency/builtin.go
package currency

import "github.com/dalemusser/amountwords/grammar"

// Codes of the built-in currencies.
const (
	CodeUAH = 980
	CodeUSD = 840
)

// UAH is the Ukrainian hryvnia with Ukrainian noun forms.
var UAH = Currency{
	Code: CodeUAH,
	Name: "UAH",
	Integer: grammar.Forms{
		One: "гривня", Few: "гривні", Many: "гривень",
		Gender: grammar.Feminine,
	},
	Fraction: grammar.Forms{
		One: "копійка", Few: "копійки", Many: "копійок",
		Gender: grammar.Feminine,
	},
}

// USD is the US dollar with English noun forms.
var USD = Currency{
	Code: CodeUSD,
	Name: "USD",
	Integer: grammar.Forms{
		One: "dollar", Few: "dollars", Many: "dollars",
		Gender: grammar.Masculine,
	},
	Fraction: grammar.Forms{
		One: "cent", Few: "cents", Many: "cents",
		Gender: grammar.Masculine,
	},
	SpellZeroFraction: true,
}

// Builtins returns copies of the currencies every default registry starts with.
func Builtins() []Currency {
	return []Currency{UAH, USD}
}
