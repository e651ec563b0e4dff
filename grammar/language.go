// grammar/language.go

// Package grammar renders base-1000 numeral groups as words followed by the
// noun form that agrees with them.
//
// A single algorithm serves every language; a Language descriptor supplies
// the lexicon, the agreement rule and whether the numerals one and two
// follow the noun's gender. Ukrainian and English are built in.
package grammar

import (
	"strings"

	"github.com/dalemusser/amountwords/numeral"
	"golang.org/x/text/language"
)

// Tag is the short language identifier callers pass to the formatter.
type Tag string

const (
	TagUA  Tag = "UA"
	TagENG Tag = "ENG"
)

// Lexicon holds the number words of a language. Arrays are indexed by digit;
// index 0 of Units, Tens and Hundreds is unused.
type Lexicon struct {
	Zero string

	// Units are the masculine (or only) forms of 1..9.
	Units [10]string

	// Feminine overrides Units where non-empty; only read when the language
	// is gender sensitive.
	Feminine [10]string

	// Teens are 10..19 indexed by the units digit.
	Teens    [10]string
	Tens     [10]string
	Hundreds [10]string
}

// Language describes how one language spells amounts.
type Language struct {
	Tag  Tag
	Name string

	// Base is the BCP 47 language the descriptor answers to in strict matching.
	Base language.Tag

	Agreement       Agreement
	GenderSensitive bool
	Lexicon         Lexicon

	Thousand Forms
	Million  Forms
	Billion  Forms
}

// Triad couples a numeral group with the noun forms rendered after it.
type Triad struct {
	Forms      Forms
	Power      int
	Extraction numeral.Extraction

	// Mandatory groups render their noun even when the value is zero.
	Mandatory bool

	// SpellZero writes the zero word before the noun of a mandatory zero group.
	SpellZero bool
}

// Value extracts the triad's group from an amount in minor-unit ticks.
func (t Triad) Value(amount int64) int {
	return numeral.Extract(amount, t.Power, t.Extraction)
}

// Magnitudes returns the billion, million and thousand triads in
// descending order. The slice is freshly allocated on each call.
func (l *Language) Magnitudes() []Triad {
	return []Triad{
		{Forms: l.Billion, Power: numeral.Billions},
		{Forms: l.Million, Power: numeral.Millions},
		{Forms: l.Thousand, Power: numeral.Thousands},
	}
}

// Render appends the words for value (0..999) and the agreeing noun of t to
// b. Every non-empty rendering ends with a single space. A zero value writes
// nothing unless t is mandatory.
func (l *Language) Render(b *strings.Builder, t Triad, value int) {
	if value == 0 {
		if !t.Mandatory {
			return
		}
		if t.SpellZero {
			b.WriteString(l.Lexicon.Zero)
			b.WriteByte(' ')
		}
		l.writeNoun(b, t.Forms, value)
		return
	}

	d := numeral.Decompose(value)

	if d.Hundreds > 0 {
		b.WriteString(l.Lexicon.Hundreds[d.Hundreds])
		b.WriteByte(' ')
	}

	switch {
	case d.Teen():
		b.WriteString(l.Lexicon.Teens[d.Units])
		b.WriteByte(' ')
	case d.Tens > 1:
		b.WriteString(l.Lexicon.Tens[d.Tens])
		b.WriteByte(' ')
	}

	if !d.Teen() && d.Units > 0 {
		b.WriteString(l.unit(d.Units, t.Forms.Gender))
		b.WriteByte(' ')
	}

	l.writeNoun(b, t.Forms, value)
}

// RenderString is Render into a fresh string.
func (l *Language) RenderString(t Triad, value int) string {
	var b strings.Builder
	l.Render(&b, t, value)
	return b.String()
}

func (l *Language) writeNoun(b *strings.Builder, f Forms, value int) {
	b.WriteString(f.Word(l.Agreement(value)))
	b.WriteByte(' ')
}

func (l *Language) unit(u int, g Gender) string {
	if l.GenderSensitive && g == Feminine {
		if w := l.Lexicon.Feminine[u]; w != "" {
			return w
		}
	}
	return l.Lexicon.Units[u]
}

// Languages returns the built-in languages.
func Languages() []*Language {
	return []*Language{Ukrainian, English}
}
