// grammar/match.go
package grammar

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// MatchMode controls how a caller's language string selects a Language.
type MatchMode int

const (
	// Strict accepts "UA"/"ENG" case-insensitively or a BCP 47 tag whose base
	// language is Ukrainian or English ("uk", "uk-UA", "en-GB").
	Strict MatchMode = iota

	// Lenient selects Ukrainian when the string contains "UA", otherwise
	// English when it contains "ENG". "UA-UAH" and "xENGx" both match.
	Lenient
)

// String returns the mode name used in configuration.
func (m MatchMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return "unknown"
	}
}

// ParseMatchMode parses "strict" or "lenient"; empty means Strict.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("grammar: unknown language matching mode %q", s)
	}
}

// Match resolves a language string. It reports false when nothing matches.
func Match(tag string, mode MatchMode) (*Language, bool) {
	if mode == Lenient {
		return matchLenient(tag)
	}
	return matchStrict(tag)
}

func matchLenient(tag string) (*Language, bool) {
	switch {
	case strings.Contains(tag, string(TagUA)):
		return Ukrainian, true
	case strings.Contains(tag, string(TagENG)):
		return English, true
	default:
		return nil, false
	}
}

func matchStrict(tag string) (*Language, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, false
	}

	for _, l := range Languages() {
		if strings.EqualFold(tag, string(l.Tag)) {
			return l, true
		}
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return nil, false
	}
	base, conf := parsed.Base()
	if conf == language.No {
		return nil, false
	}

	for _, l := range Languages() {
		if lb, _ := l.Base.Base(); lb == base {
			return l, true
		}
	}
	return nil, false
}
