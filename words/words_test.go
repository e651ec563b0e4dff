package words

import (
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/amountwords/currency"
	"github.com/dalemusser/amountwords/grammar"
	"github.com/dalemusser/amountwords/numeral"
	apperrors "github.com/dalemusser/amountwords/pantry/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	e := New()

	tests := []struct {
		name   string
		amount int64
		cur    currency.Currency
		lang   string
		want   string
	}{
		{"zero hryvnias", 0, currency.UAH, "UA", "нуль гривень копійок "},
		{"zero dollars", 0, currency.USD, "ENG", "zero dollars zero cents "},
		{"nine dollars", 900, currency.USD, "ENG", "nine dollars zero cents "},
		{"teen kopiyky", 111, currency.UAH, "UA", "одна гривня одинадцять копійок "},
		{"only kopiyka", 1, currency.UAH, "UA", "нуль гривень одна копійка "},
		{"only cents", 5, currency.USD, "ENG", "zero dollars five cents "},
		{"feminine two", 2200, currency.UAH, "UA", "двадцять дві гривні копійок "},
		{"twenty one", 2101, currency.USD, "ENG", "twenty one dollar one cent "},
		{"one thousand", 100000, currency.UAH, "UA", "одна тисяча гривень копійок "},
		{"thousands and fraction", 123456, currency.UAH, "UA",
			"одна тисяча двісті тридцять чотири гривні п'ятдесят шість копійок "},
		{"two billion", 200000000000, currency.UAH, "UA", "два мільярди гривень копійок "},
		{"five million", 500000000, currency.UAH, "UA", "п'ять мільйонів гривень копійок "},
		{"maximum ua", numeral.MaxAmount, currency.UAH, "UA",
			"два мільярди сто сорок сім мільйонів чотириста вісімдесят три тисячі " +
				"шістсот сорок сім гривень копійок "},
		{"maximum eng", numeral.MaxAmount, currency.USD, "ENG",
			"two billion one hundred forty seven million four hundred eighty three thousand " +
				"six hundred forty seven dollars zero cents "},
		{"bcp47 tag", 900, currency.USD, "en-US", "nine dollars zero cents "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Format(tt.amount, tt.cur, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRange(t *testing.T) {
	e := New()

	for _, amount := range []int64{-1, numeral.MaxAmount + 1, 1 << 62} {
		got, err := e.Format(amount, currency.UAH, "UA")
		require.Error(t, err, "amount %d", amount)
		assert.True(t, apperrors.Is(err, apperrors.ErrOutOfRange))
		assert.Empty(t, got)
	}

	_, err := e.Format(numeral.MaxAmount, currency.UAH, "UA")
	assert.NoError(t, err)
}

func TestFormatUnresolvedCurrency(t *testing.T) {
	e := New()

	_, err := e.Format(900, "USD", "ENG")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	_, err = e.Format(900, nil, "ENG")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestFormatIncompleteCurrency(t *testing.T) {
	e := New()
	partial := currency.Currency{Code: 1, Name: "XXX", Integer: currency.USD.Integer}

	_, err := e.Format(900, partial, "ENG")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestFormatUnknownLanguage(t *testing.T) {
	e := New()

	for _, lang := range []string{"", "DE", "fr-FR"} {
		got, err := e.Format(900, currency.USD, lang)
		require.NoError(t, err, lang)
		assert.Empty(t, got, lang)
	}

	// the range check precedes language matching
	_, err := e.Format(-5, currency.USD, "DE")
	assert.True(t, apperrors.Is(err, apperrors.ErrOutOfRange))
}

func TestFormatLenientMatching(t *testing.T) {
	e := New(WithLanguageMatching(grammar.Lenient))
	assert.Equal(t, grammar.Lenient, e.MatchMode())

	got, err := e.Format(111, currency.UAH, "UA-UAH")
	require.NoError(t, err)
	assert.Equal(t, "одна гривня одинадцять копійок ", got)

	got, err = e.Format(900, currency.USD, "xENGx")
	require.NoError(t, err)
	assert.Equal(t, "nine dollars zero cents ", got)

	got, err = e.Format(900, currency.USD, "en-US")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFormatSpellZeroFractionFlag(t *testing.T) {
	e := New()

	quiet := currency.USD
	quiet.SpellZeroFraction = false
	got, err := e.Format(900, quiet, "ENG")
	require.NoError(t, err)
	assert.Equal(t, "nine dollars cents ", got)

	loud := currency.UAH
	loud.SpellZeroFraction = true
	got, err = e.Format(900, loud, "UA")
	require.NoError(t, err)
	assert.Equal(t, "дев'ять гривень нуль копійок ", got)
}

func TestFormatIsWellFormed(t *testing.T) {
	e := New()
	amounts := []int64{0, 1, 10, 99, 100, 101, 1111, 1919, 100000, 1234567, 99999999, 100000000000, numeral.MaxAmount}

	for _, amount := range amounts {
		for _, lang := range []string{"UA", "ENG"} {
			for _, c := range []currency.Currency{currency.UAH, currency.USD} {
				got, err := e.Format(amount, c, lang)
				require.NoError(t, err)
				require.NotEmpty(t, got)
				assert.True(t, strings.HasSuffix(got, " "), "%q", got)
				assert.False(t, strings.HasPrefix(got, " "), "%q", got)
				assert.NotContains(t, got, "  ")

				again, _ := e.Format(amount, c, lang)
				assert.Equal(t, got, again)
			}
		}
	}
}

func TestMappingSwap(t *testing.T) {
	e := New()
	assert.NotNil(t, e.Mapping())

	e.SetMapping(currency.LookupMapping(e.Registry()))
	got, err := e.Format(900, "usd", "ENG")
	require.NoError(t, err)
	assert.Equal(t, "nine dollars zero cents ", got)

	got, err = e.Format(111, 980, "UA")
	require.NoError(t, err)
	assert.Equal(t, "одна гривня одинадцять копійок ", got)

	e.SetMapping(nil)
	_, err = e.Format(900, "usd", "ENG")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	got, err = e.Format(900, currency.USD, "ENG")
	require.NoError(t, err)
	assert.Equal(t, "nine dollars zero cents ", got)
}

func TestCustomMapping(t *testing.T) {
	type money int
	const hryvnia money = 1

	e := New(WithMapping(currency.MappingFunc(func(token any) (currency.Currency, bool) {
		if token == hryvnia {
			return currency.UAH, true
		}
		return currency.Currency{}, false
	})))

	got, err := e.Format(200, hryvnia, "UA")
	require.NoError(t, err)
	assert.Equal(t, "дві гривні копійок ", got)
}

func TestRegisteredCurrencyFormats(t *testing.T) {
	reg := currency.NewDefaultRegistry()
	e := New(WithRegistry(reg), WithMapping(currency.LookupMapping(reg)))

	eur := currency.Currency{
		Code:              978,
		Name:              "EUR",
		Integer:           grammar.Forms{One: "euro", Few: "euros", Many: "euros", Gender: grammar.Masculine},
		Fraction:          grammar.Forms{One: "cent", Few: "cents", Many: "cents", Gender: grammar.Masculine},
		SpellZeroFraction: true,
	}

	_, err := e.Format(100, "EUR", "ENG")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	require.NoError(t, e.RegisterCurrency(eur))
	assert.Len(t, e.ListCurrencies(), 3)

	got, err := e.Format(100, "EUR", "ENG")
	require.NoError(t, err)
	assert.Equal(t, "one euro zero cents ", got)

	assert.True(t, e.UnregisterCurrency(eur))
	_, err = e.Format(100, "EUR", "ENG")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestObserver(t *testing.T) {
	var mu sync.Mutex
	var events []Event
	e := New(WithObserver(ObserverFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})))

	_, _ = e.Format(900, currency.USD, "eng")
	_, _ = e.Format(900, currency.USD, "DE")
	_, _ = e.Format(-1, currency.USD, "ENG")

	require.Len(t, events, 3)

	assert.Equal(t, "ENG", events[0].Language)
	assert.Equal(t, "USD", events[0].Currency)
	assert.NoError(t, events[0].Err)
	assert.False(t, events[0].UnknownLanguage)

	assert.Equal(t, "DE", events[1].Language)
	assert.True(t, events[1].UnknownLanguage)

	assert.True(t, apperrors.Is(events[2].Err, apperrors.ErrOutOfRange))
	assert.Empty(t, events[2].Currency)
}

func TestConcurrentFormatAndSwap(t *testing.T) {
	e := New()
	lookup := currency.LookupMapping(e.Registry())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				e.SetMapping(lookup)
			} else {
				e.SetMapping(nil)
			}
		}
	}()

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				// currency values resolve under both mappings
				got, err := e.Format(111, currency.UAH, "UA")
				assert.NoError(t, err)
				assert.Equal(t, "одна гривня одинадцять копійок ", got)
			}
		}()
	}
	wg.Wait()
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"9", 900},
		{"9.5", 950},
		{"9.05", 905},
		{"1.11", 111},
		{"2147483647", numeral.MaxAmount},
		{"2147483647.00", numeral.MaxAmount},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseAmount("9.005")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = ParseAmount("nine")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = ParseAmount("-0.01")
	assert.True(t, apperrors.Is(err, apperrors.ErrOutOfRange))

	_, err = ParseAmount("2147483647.01")
	assert.True(t, apperrors.Is(err, apperrors.ErrOutOfRange))

	assert.True(t, MaxDecimal().Equal(decimal.RequireFromString("2147483647")))
	assert.Equal(t, "9.05", ToDecimal(905).StringFixed(2))
}

func TestFormatDecimal(t *testing.T) {
	e := New()

	got, err := e.FormatDecimal(decimal.RequireFromString("1.11"), currency.UAH, "UA")
	require.NoError(t, err)
	assert.Equal(t, "одна гривня одинадцять копійок ", got)

	_, err = e.FormatDecimal(decimal.RequireFromString("0.001"), currency.UAH, "UA")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestPackageLevelDefault(t *testing.T) {
	t.Cleanup(func() { SetMapping(nil) })

	got, err := Format(900, currency.USD, "ENG")
	require.NoError(t, err)
	assert.Equal(t, "nine dollars zero cents ", got)

	got, err = FormatDecimal(decimal.RequireFromString("9"), currency.USD, "ENG")
	require.NoError(t, err)
	assert.Equal(t, "nine dollars zero cents ", got)

	assert.Same(t, std, Default())
	assert.Len(t, ListCurrencies(), 2)

	SetMapping(currency.LookupMapping(Default().Registry()))
	got, err = Format(900, "USD", "ENG")
	require.NoError(t, err)
	assert.Equal(t, "nine dollars zero cents ", got)

	eur := currency.Currency{
		Code:     978,
		Name:     "EUR",
		Integer:  grammar.Forms{One: "euro", Few: "euros", Many: "euros", Gender: grammar.Masculine},
		Fraction: grammar.Forms{One: "cent", Few: "cents", Many: "cents", Gender: grammar.Masculine},
	}
	require.NoError(t, RegisterCurrency(eur))
	t.Cleanup(func() { UnregisterCurrency(eur) })

	assert.NotNil(t, Mapping())
	got, err = Format(500, "eur", "ENG")
	require.NoError(t, err)
	assert.Equal(t, "five euros cents ", got)
}

func TestSpell(t *testing.T) {
	assert.Equal(t, "нуль гривень копійок ", Spell(grammar.Ukrainian, currency.UAH, 0))
	assert.Equal(t, "one dollar one cent ", Spell(grammar.English, currency.USD, 101))
}

func TestFigures(t *testing.T) {
	e := New()

	got, ok := e.Figures(123456, "ENG")
	require.True(t, ok)
	assert.Equal(t, "1,234.56", got)

	got, ok = e.Figures(900, "en-US")
	require.True(t, ok)
	assert.Equal(t, "9.00", got)

	got, ok = e.Figures(123456, "UA")
	require.True(t, ok)
	assert.Contains(t, got, ",56", "Ukrainian uses a decimal comma")

	_, ok = e.Figures(100, "DE")
	assert.False(t, ok)
	_, ok = e.Figures(-1, "ENG")
	assert.False(t, ok)
}
