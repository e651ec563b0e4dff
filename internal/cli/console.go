// internal/cli/console.go
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dalemusser/amountwords/currency"
	"github.com/dalemusser/amountwords/words"
)

// Console prompts: a language, then an amount with two decimal places.
const (
	promptLanguage = "Choose a language: UA or ENG. Enter 'y' to exit."
	promptAmount   = "Enter an amount from 0 to 2147483647 with two decimals, e.g. 9,00. Use ',' for UA and '.' for ENG."
	msgBadAmount   = "Invalid amount, please try again."
	msgBadCommand  = "Unknown command, please try again."
)

// consoleLanguage is one language choice of the console: the currency it
// spells with, the accepted amount shape and the separator to strip.
type consoleLanguage struct {
	currency  currency.Currency
	pattern   *regexp.Regexp
	separator string
}

var consoleLanguages = map[string]consoleLanguage{
	"UA": {
		currency:  currency.UAH,
		pattern:   regexp.MustCompile(`^([,\d]+)([,]\d{2})$`),
		separator: ",",
	},
	"ENG": {
		currency:  currency.USD,
		pattern:   regexp.MustCompile(`^([.\d]+)([.]\d{2})$`),
		separator: ".",
	},
}

// Console is the interactive loop of "amountwords interactive".
type Console struct {
	engine *words.Engine
	in     *bufio.Scanner
	out    io.Writer
}

// NewConsole reads from in and writes prompts and results to out.
func NewConsole(engine *words.Engine, in io.Reader, out io.Writer) *Console {
	return &Console{engine: engine, in: bufio.NewScanner(in), out: out}
}

// Run loops until the user enters "y", input ends or ctx is done.
// Language names are exact ("UA", "ENG"); the exit answer is
// case-insensitive.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(c.out, promptLanguage)
		lang, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}
		if strings.EqualFold(lang, "y") {
			return nil
		}

		cl, known := consoleLanguages[lang]
		if !known {
			fmt.Fprintln(c.out, msgBadCommand)
			continue
		}

		if err := c.readAmount(ctx, lang, cl); err != nil {
			return err
		}
	}
}

// readAmount prompts until a well-formed amount is spelled. End of input
// returns nil.
func (c *Console) readAmount(ctx context.Context, lang string, cl consoleLanguage) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(c.out, promptAmount)
		value, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}

		amount, ok := parseConsoleAmount(value, cl)
		if !ok {
			fmt.Fprintln(c.out, msgBadAmount)
			continue
		}

		s, err := c.engine.Format(amount, cl.currency, lang)
		if err != nil {
			fmt.Fprintln(c.out, msgBadAmount)
			continue
		}
		fmt.Fprintln(c.out, s)
		return nil
	}
}

// parseConsoleAmount checks value against the language's shape and strips
// every separator, so "1,234,56" is 123456 ticks.
func parseConsoleAmount(value string, cl consoleLanguage) (int64, bool) {
	if !cl.pattern.MatchString(value) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(value, cl.separator, ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
