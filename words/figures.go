// words/figures.go
package words

import (
	"github.com/dalemusser/amountwords/grammar"
	"github.com/dalemusser/amountwords/numeral"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Figures writes amount in digits with two decimals, grouped the way the
// matched language writes numbers ("1,234.56" in English). It reports false
// when lang matches no language or amount is out of range.
func (e *Engine) Figures(amount int64, lang string) (string, bool) {
	if amount < 0 || amount > numeral.MaxAmount {
		return "", false
	}
	l, ok := grammar.Match(lang, e.matching)
	if !ok {
		return "", false
	}
	p := message.NewPrinter(l.Base)
	return p.Sprint(number.Decimal(ToDecimal(amount).InexactFloat64(), number.Scale(2))), true
}
