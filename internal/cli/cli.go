// internal/cli/cli.go

// Package cli implements the amountwords command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dalemusser/amountwords/app"
	"github.com/dalemusser/amountwords/config"
	"github.com/dalemusser/amountwords/export"
	"github.com/dalemusser/amountwords/internal/api"
	"github.com/dalemusser/amountwords/logging"
	"github.com/dalemusser/amountwords/pantry/version"
	"github.com/dalemusser/amountwords/words"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// IO is the process environment of a command.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO is the real terminal.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Run is the entrypoint of the amountwords binary. binName is shown in
// usage text; args exclude the binary name. It returns the exit code.
func Run(binName string, args []string) int {
	return RunIO(context.Background(), binName, args, StdIO())
}

// RunIO is Run with explicit streams.
func RunIO(ctx context.Context, binName string, args []string, stdio IO) int {
	if len(args) < 1 {
		usage(binName, stdio.Err)
		return 2
	}

	var err error
	switch args[0] {
	case "say":
		err = sayCmd(ctx, binName, args[1:], stdio)
	case "currencies":
		err = currenciesCmd(ctx, binName, args[1:], stdio)
	case "export":
		err = exportCmd(ctx, binName, args[1:], stdio)
	case "interactive":
		err = interactiveCmd(ctx, binName, args[1:], stdio)
	case "serve":
		err = serveCmd(ctx, binName, args[1:], stdio)
	case "version":
		fmt.Fprintln(stdio.Out, version.String())
	case "help", "-h", "--help":
		usage(binName, stdio.Out)
	default:
		fmt.Fprintf(stdio.Err, "unknown command: %q\n\n", args[0])
		usage(binName, stdio.Err)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintln(stdio.Err, "error:", err)
		return 1
	}
}

var errUsage = errors.New("usage")

func usage(binName string, w io.Writer) {
	fmt.Fprintf(w, "%s spells monetary amounts out in Ukrainian or English.\n\n", binName)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s say <amount> [--currency UAH] [--lang UA] [--minor]\n", binName)
	fmt.Fprintf(w, "  %s currencies\n", binName)
	fmt.Fprintf(w, "  %s export --in amounts.csv --out words.xlsx\n", binName)
	fmt.Fprintf(w, "  %s interactive\n", binName)
	fmt.Fprintf(w, "  %s serve [--http_port 8080]\n", binName)
	fmt.Fprintf(w, "  %s version\n", binName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every command accepts the configuration flags (see --help on a command);")
	fmt.Fprintln(w, "they can also be set in config.yaml or AMOUNTWORDS_* environment variables.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example:")
	fmt.Fprintf(w, "  %s say 1234.56 --currency USD --lang ENG\n", binName)
}

// setup loads the configuration from args into fs (after the caller has
// declared its own flags on it) and builds the engine.
func setup(fs *pflag.FlagSet, args []string, stdio IO) (*config.Config, *words.Engine, *zap.Logger, error) {
	fs.SetOutput(stdio.Err)
	boot := logging.CLILogger("warn")

	cfg, err := config.Load(boot, fs, args)
	if err != nil {
		return nil, nil, nil, err
	}

	level := "warn"
	if strings.EqualFold(cfg.LogLevel, "debug") {
		level = "debug"
	}
	logger := logging.CLILogger(level)

	engine, err := app.NewEngine(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, engine, logger, nil
}

func sayCmd(_ context.Context, binName string, args []string, stdio IO) error {
	fs := pflag.NewFlagSet("say", pflag.ContinueOnError)
	cur := fs.String("currency", "", "Currency name or numeric code (default: default_currency)")
	lang := fs.String("lang", "", "Language: UA, ENG or a BCP 47 tag (default: default_language)")
	minor := fs.Bool("minor", false, "Amount is given in minor units (cents, kopecks)")
	fs.Usage = func() {
		fmt.Fprintf(stdio.Err, "Usage: %s say <amount> [flags]\n", binName)
		fs.PrintDefaults()
	}

	cfg, engine, _, err := setup(fs, args, stdio)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	amount, err := parseAmountArg(fs.Arg(0), *minor)
	if err != nil {
		return err
	}
	if *cur == "" {
		*cur = cfg.Format.DefaultCurrency
	}
	if *lang == "" {
		*lang = cfg.Format.DefaultLanguage
	}

	s, err := engine.Format(amount, *cur, *lang)
	if err != nil {
		return err
	}
	if s == "" {
		return fmt.Errorf("language %q is not supported", *lang)
	}
	fmt.Fprintln(stdio.Out, strings.TrimSpace(s))
	return nil
}

func parseAmountArg(s string, minor bool) (int64, error) {
	if !minor {
		return words.ParseAmount(s)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("minor amount %q is not an integer", s)
	}
	return n, nil
}

func currenciesCmd(_ context.Context, binName string, args []string, stdio IO) error {
	fs := pflag.NewFlagSet("currencies", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(stdio.Err, "Usage: %s currencies [flags]\n", binName)
		fs.PrintDefaults()
	}

	_, engine, _, err := setup(fs, args, stdio)
	if err != nil {
		return err
	}

	list := engine.ListCurrencies()
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })

	tw := tabwriter.NewWriter(stdio.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tINTEGER\tFRACTION")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s/%s/%s (%s)\t%s/%s/%s (%s)\n",
			c.Code, c.Name,
			c.Integer.One, c.Integer.Few, c.Integer.Many, c.Integer.Gender,
			c.Fraction.One, c.Fraction.Few, c.Fraction.Many, c.Fraction.Gender)
	}
	return tw.Flush()
}

func exportCmd(_ context.Context, binName string, args []string, stdio IO) error {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	in := fs.String("in", "-", `Input CSV (amount,currency,language); "-" reads stdin`)
	out := fs.String("out", "-", `Output file; .xlsx writes a workbook, "-" writes CSV to stdout`)
	format := fs.String("format", "", `Output format "csv" or "xlsx" (default: from --out)`)
	fs.Usage = func() {
		fmt.Fprintf(stdio.Err, "Usage: %s export --in amounts.csv --out words.xlsx [flags]\n", binName)
		fs.PrintDefaults()
	}

	cfg, engine, logger, err := setup(fs, args, stdio)
	if err != nil {
		return err
	}

	f := export.FormatFor(*out)
	if *format != "" {
		if f, err = export.ParseFormat(*format); err != nil {
			return err
		}
	}

	var r io.Reader = stdio.In
	if *in != "-" {
		file, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}

	rows, err := export.ReadRows(r)
	if err != nil {
		return err
	}
	results := export.Convert(engine, rows, export.Defaults{
		Currency: cfg.Format.DefaultCurrency,
		Language: cfg.Format.DefaultLanguage,
	})

	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			logger.Warn("row not converted", zap.Int("row", i+1), zap.Error(res.Err))
		}
	}

	if *out == "-" {
		return export.Write(stdio.Out, f, results)
	}
	file, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := export.Write(file, f, results); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdio.Err, "wrote %d rows to %s (%d failed)\n", len(results), *out, failed)
	return nil
}

func interactiveCmd(ctx context.Context, binName string, args []string, stdio IO) error {
	fs := pflag.NewFlagSet("interactive", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(stdio.Err, "Usage: %s interactive [flags]\n", binName)
		fs.PrintDefaults()
	}

	_, engine, _, err := setup(fs, args, stdio)
	if err != nil {
		return err
	}
	return NewConsole(engine, stdio.In, stdio.Out).Run(ctx)
}

func serveCmd(ctx context.Context, binName string, args []string, stdio IO) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.SetOutput(stdio.Err)
	fs.Usage = func() {
		fmt.Fprintf(stdio.Err, "Usage: %s serve [flags]\n", binName)
		fs.PrintDefaults()
	}

	return app.Run(ctx, app.Hooks{
		Name: binName,
		LoadConfig: func(logger *zap.Logger) (*config.Config, error) {
			return config.Load(logger, fs, args)
		},
		BuildHandler: api.NewHandler,
	})
}
