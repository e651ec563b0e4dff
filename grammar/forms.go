// grammar/forms.go
package grammar

import (
	"fmt"
	"strings"
)

// Gender is the grammatical gender of a noun. Numerals one and two agree
// with it in gendered languages.
type Gender int

const (
	GenderUnset Gender = iota
	Masculine
	Feminine
)

// String returns the lowercase gender name.
func (g Gender) String() string {
	switch g {
	case Masculine:
		return "masculine"
	case Feminine:
		return "feminine"
	default:
		return ""
	}
}

// ParseGender accepts "masculine"/"male"/"m" and "feminine"/"female"/"f",
// case-insensitively. The empty string parses to GenderUnset.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return GenderUnset, nil
	case "masculine", "male", "m":
		return Masculine, nil
	case "feminine", "female", "f":
		return Feminine, nil
	default:
		return GenderUnset, fmt.Errorf("grammar: unknown gender %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gender) UnmarshalText(b []byte) error {
	parsed, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Forms is the set of noun forms a numeral can select, plus the noun's gender.
// Two-way languages use One and Many; Few is still required so a definition
// is complete for either language.
type Forms struct {
	One    string `json:"one" yaml:"one" validate:"required"`
	Few    string `json:"few" yaml:"few" validate:"required"`
	Many   string `json:"many" yaml:"many" validate:"required"`
	Gender Gender `json:"gender" yaml:"gender" validate:"required"`
}

// Word returns the form for a plural category. PluralOther selects Many.
func (f Forms) Word(p PluralForm) string {
	switch p {
	case PluralOne:
		return f.One
	case PluralFew:
		return f.Few
	default:
		return f.Many
	}
}
