// words/words.go

// Package words spells monetary amounts out in Ukrainian or English.
//
// An Engine owns a currency registry and a swappable currency mapping. The
// package-level functions operate on a process-wide default engine whose
// mapping starts as the identity mapping:
//
//	s, err := words.Format(900, currency.USD, "ENG")
//	// s == "nine dollars zero cents "
//
// Amounts are counted in minor-unit ticks (1/100 of the major unit) and
// every rendering ends with a single trailing space.
package words

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dalemusser/amountwords/currency"
	"github.com/dalemusser/amountwords/grammar"
	"github.com/dalemusser/amountwords/numeral"
	apperrors "github.com/dalemusser/amountwords/pantry/errors"
	"go.uber.org/zap"
)

// Engine formats amounts. It is safe for concurrent use; the registry and
// the mapping may change while other goroutines format.
type Engine struct {
	registry *currency.Registry
	mapping  atomic.Pointer[mappingHolder]
	matching grammar.MatchMode
	logger   *zap.Logger
	observer Observer
}

// mappingHolder lets interface values of differing dynamic types share one
// atomic pointer.
type mappingHolder struct {
	m currency.Mapping
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the registry. The default is a registry of the built-in
// currencies.
func WithRegistry(r *currency.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithMapping sets the initial mapping. The default is currency.Identity.
func WithMapping(m currency.Mapping) Option {
	return func(e *Engine) {
		e.SetMapping(m)
	}
}

// WithLanguageMatching sets how language strings are matched.
func WithLanguageMatching(mode grammar.MatchMode) Option {
	return func(e *Engine) {
		e.matching = mode
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver sets an observer notified after every Format call.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		matching: grammar.Strict,
		logger:   zap.NewNop(),
	}
	e.SetMapping(nil)
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = currency.NewDefaultRegistry(currency.WithLogger(e.logger))
	}
	return e
}

// Registry returns the engine's currency registry.
func (e *Engine) Registry() *currency.Registry {
	return e.registry
}

// RegisterCurrency adds c to the registry.
func (e *Engine) RegisterCurrency(c currency.Currency) error {
	return e.registry.Register(c)
}

// UnregisterCurrency removes the currency with c's code and reports whether
// it was present.
func (e *Engine) UnregisterCurrency(c currency.Currency) bool {
	return e.registry.Unregister(c)
}

// ListCurrencies returns a snapshot of the registry.
func (e *Engine) ListCurrencies() []currency.Currency {
	return e.registry.List()
}

// Mapping returns the active mapping.
func (e *Engine) Mapping() currency.Mapping {
	return e.mapping.Load().m
}

// SetMapping replaces the active mapping. nil restores currency.Identity.
func (e *Engine) SetMapping(m currency.Mapping) {
	if m == nil {
		m = currency.Identity
	}
	e.mapping.Store(&mappingHolder{m: m})
}

// MatchMode returns the language matching mode.
func (e *Engine) MatchMode() grammar.MatchMode {
	return e.matching
}

// Format spells amount (minor-unit ticks) in the language named by lang,
// using the currency token resolves to through the active mapping.
//
// Errors:
//   - out_of_range when amount is negative or above numeral.MaxAmount
//   - not_found when the mapping cannot resolve token
//   - validation_failed when the resolved currency is incomplete
//
// A language string that matches no language yields "" and a nil error.
func (e *Engine) Format(amount int64, token any, lang string) (string, error) {
	s, ev := e.format(amount, token, lang)
	if e.observer != nil {
		e.observer.ObserveFormat(ev)
	}
	return s, ev.Err
}

func (e *Engine) format(amount int64, token any, lang string) (string, Event) {
	ev := Event{Amount: amount, Language: lang}

	if amount < 0 || amount > numeral.MaxAmount {
		ev.Err = apperrors.OutOfRange(fmt.Sprintf("amount %d is outside 0..%d", amount, numeral.MaxAmount)).
			WithDetail("amount", amount)
		return "", ev
	}

	c, ok := e.Mapping().Resolve(token)
	if !ok {
		ev.Err = apperrors.NotFound(fmt.Sprintf("currency %v is not registered", token))
		return "", ev
	}
	ev.Currency = c.Name

	if err := currency.Validate(c); err != nil {
		ev.Err = err
		return "", ev
	}

	l, ok := grammar.Match(lang, e.matching)
	if !ok {
		e.logger.Debug("unknown language",
			zap.String("language", lang),
			zap.Stringer("matching", e.matching))
		ev.UnknownLanguage = true
		return "", ev
	}
	ev.Language = string(l.Tag)

	return Spell(l, c, amount), ev
}

// Spell renders amount with language l and currency c without any lookup.
// amount must be within 0..numeral.MaxAmount.
func Spell(l *grammar.Language, c currency.Currency, amount int64) string {
	major, _ := numeral.Split(amount)

	triads := append(l.Magnitudes(),
		grammar.Triad{
			Forms:     c.Integer,
			Power:     numeral.Units,
			Mandatory: true,
			SpellZero: major == 0,
		},
		grammar.Triad{
			Forms:      c.Fraction,
			Extraction: numeral.Fractional,
			Mandatory:  true,
			SpellZero:  c.SpellZeroFraction,
		},
	)

	var b strings.Builder
	for _, t := range triads {
		l.Render(&b, t, t.Value(amount))
	}
	return b.String()
}
