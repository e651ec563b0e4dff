// app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/amountwords/config"
	"github.com/dalemusser/amountwords/currency"
	"github.com/dalemusser/amountwords/logging"
	"github.com/dalemusser/amountwords/metrics"
	"github.com/dalemusser/amountwords/server"
	"github.com/dalemusser/amountwords/words"
	"go.uber.org/zap"
)

// Hooks are the integration points of a served application.
type Hooks struct {
	// Name is used only for logging.
	Name string

	// LoadConfig returns the loaded configuration, typically via config.Load.
	LoadConfig func(logger *zap.Logger) (*config.Config, error)

	// BuildHandler constructs the final http.Handler: router, middleware
	// and routes over the engine built from the config.
	BuildHandler func(cfg *config.Config, engine *words.Engine, logger *zap.Logger) (http.Handler, error)
}

// Run executes the startup sequence:
//
//  1. Bootstrap logger
//  2. Load config (Hooks.LoadConfig)
//  3. Build the final logger from config
//  4. Register default metrics
//  5. Build the engine (built-ins plus currencies_file)
//  6. Wire shutdown signals to a context
//  7. Build the HTTP handler (Hooks.BuildHandler)
//  8. Serve until shutdown
func Run(ctx context.Context, hooks Hooks) error {
	bootstrap := logging.BootstrapLogger()
	defer bootstrap.Sync()

	cfg, err := hooks.LoadConfig(bootstrap)
	if err != nil {
		bootstrap.Error("config load failed", zap.Error(err))
		return err
	}
	bootstrap.Info("config loaded",
		zap.String("app", hooks.Name),
		zap.String("env", cfg.Env),
		zap.String("log_level", cfg.LogLevel),
	)

	logger, err := logging.BuildLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		bootstrap.Error("logger build failed", zap.Error(err))
		return err
	}
	defer logger.Sync()

	metrics.RegisterDefault(logger)

	engine, err := NewEngine(cfg, logger)
	if err != nil {
		logger.Error("engine setup failed", zap.Error(err))
		return err
	}

	ctx, cancel := server.WithShutdownSignals(ctx, logger)
	defer cancel()

	handler, err := hooks.BuildHandler(cfg, engine, logger)
	if err != nil {
		logger.Error("handler build failed", zap.Error(err))
		return err
	}

	if err := server.ListenAndServeWithContext(ctx, cfg, handler, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// NewEngine builds the engine described by cfg: a registry of the built-in
// currencies plus any catalog named by currencies_file, a mapping that
// resolves names and numeric codes through that registry, the configured
// language matching and the Prometheus format observer.
func NewEngine(cfg *config.Config, logger *zap.Logger) (*words.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := currency.NewDefaultRegistry(currency.WithLogger(logger))

	if path := cfg.Format.CurrenciesFile; path != "" {
		cs, err := currency.LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		if err := reg.RegisterAll(cs...); err != nil {
			return nil, fmt.Errorf("register %s: %w", path, err)
		}
		logger.Info("currency catalog loaded",
			zap.String("file", path),
			zap.Int("currencies", len(cs)))
	}

	return words.New(
		words.WithRegistry(reg),
		words.WithMapping(currency.LookupMapping(reg)),
		words.WithLanguageMatching(cfg.MatchMode()),
		words.WithLogger(logger),
		words.WithObserver(metrics.FormatObserver{}),
	), nil
}
