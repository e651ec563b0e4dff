// config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/amountwords/grammar"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every environment variable, e.g. AMOUNTWORDS_HTTP_PORT.
const EnvPrefix = "AMOUNTWORDS"

// CORSConfig groups all CORS behavior and lists.
type CORSConfig struct {
	EnableCORS           bool     `mapstructure:"enable_cors"`
	CORSAllowedOrigins   []string `mapstructure:"cors_allowed_origins"`
	CORSAllowedMethods   []string `mapstructure:"cors_allowed_methods"`
	CORSAllowedHeaders   []string `mapstructure:"cors_allowed_headers"`
	CORSExposedHeaders   []string `mapstructure:"cors_exposed_headers"`
	CORSAllowCredentials bool     `mapstructure:"cors_allow_credentials"`
	CORSMaxAge           int      `mapstructure:"cors_max_age"`
}

// FormatConfig holds the defaults the CLI and HTTP API fall back to when a
// request names no language or currency.
type FormatConfig struct {
	DefaultLanguage  string `mapstructure:"default_language"`
	DefaultCurrency  string `mapstructure:"default_currency"`
	LanguageMatching string `mapstructure:"language_matching"` // "strict" | "lenient"

	// CurrenciesFile is an optional YAML/JSON catalog registered at startup.
	CurrenciesFile string `mapstructure:"currencies_file"`
}

// Config is the complete amountwords configuration.
type Config struct {
	// runtime
	Env      string `mapstructure:"env"`       // "dev" | "prod"
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error …

	// HTTP
	HTTPPort            int           `mapstructure:"http_port"`
	ShutdownTimeout     time.Duration `mapstructure:"-"` // parsed separately; accepts "15s" or 15
	MaxRequestBodyBytes int64         `mapstructure:"max_request_body_bytes"`

	// RateLimit is requests per second per client IP on /v1; 0 disables it.
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`

	CORS   CORSConfig   `mapstructure:",squash"`
	Format FormatConfig `mapstructure:",squash"`
}

// MatchMode returns the parsed language matching mode. Load has already
// validated it.
func (c Config) MatchMode() grammar.MatchMode {
	m, _ := grammar.ParseMatchMode(c.Format.LanguageMatching)
	return m
}

// Dump returns a pretty JSON string of the config for debugging.
func (c Config) Dump() string {
	b, _ := json.MarshalIndent(c, "", "  ")
	return string(b)
}

// DefineFlags declares every configuration flag on fs. Only flags the user
// sets explicitly override env and file values.
func DefineFlags(fs *pflag.FlagSet) {
	fs.String("env", "dev", `Runtime environment "dev"|"prod"`)
	fs.String("log_level", "info", "Log level")

	fs.Int("http_port", 8080, "HTTP port")
	fs.String("shutdown_timeout", "15s", `Graceful shutdown timeout (e.g., "15s", "1m")`)
	fs.Int64("max_request_body_bytes", 64<<10, "Max HTTP request body size in bytes (0 = unlimited)")
	fs.Float64("rate_limit", 0, "Requests per second per client IP on /v1 (0 = unlimited)")
	fs.Int("rate_limit_burst", 20, "Burst size for rate_limit")

	fs.Bool("enable_cors", false, "Enable CORS")
	fs.String("cors_allowed_origins", "", `JSON array of origins, e.g. '["https://a.example","https://b.example"]'`)
	fs.String("cors_allowed_methods", "", `JSON array of methods, e.g. '["GET","POST"]'`)
	fs.String("cors_allowed_headers", "", `JSON array of headers, e.g. '["Accept","Content-Type"]'`)
	fs.String("cors_exposed_headers", "", `JSON array of headers, e.g. '["Link"]'`)
	fs.Bool("cors_allow_credentials", false, "CORS: allow credentials")
	fs.Int("cors_max_age", 0, "CORS: max age seconds (0 disables cache)")

	fs.String("default_language", "UA", `Language used when none is given ("UA", "ENG", "uk", "en-US")`)
	fs.String("default_currency", "UAH", "Currency used when none is given (name or numeric code)")
	fs.String("language_matching", "strict", `Language matching: "strict" or "lenient"`)
	fs.String("currencies_file", "", "YAML/JSON currency catalog registered at startup")
}

// Load merges defaults → config.* file(s) → env vars → explicit flags into one Config.
// Final precedence (highest wins): flags(explicit) > env > config > defaults.
//
// Flags are declared on fs and parsed from args, so callers may declare
// their own flags on fs first and read fs.Args() afterwards. A nil fs gets a
// fresh flag set.
func Load(logger *zap.Logger, fs *pflag.FlagSet, args []string) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fs == nil {
		fs = pflag.NewFlagSet("amountwords", pflag.ContinueOnError)
	}

	// 0) Optionally load .env (safe: real env still wins over .env)
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded .env file")
	}

	// 1) Flags
	DefineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 2) Viper + env
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Bind env for all keys so Unmarshal sees them.
	for _, k := range allKeys() {
		_ = v.BindEnv(k)
	}

	// 3) Optional config.* files (yaml|yml|json|toml)
	mergeConfigFiles(logger, v)

	// 4) Defaults (lowest precedence)
	setDefaults(v)

	// 5) Apply *explicit* flags (highest precedence)
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	// 6) Normalize list keys (accept JSON strings → []string)
	if err := normalizeListKeys(logger, v,
		"cors_allowed_origins",
		"cors_allowed_methods",
		"cors_allowed_headers",
		"cors_exposed_headers",
	); err != nil {
		return nil, err
	}

	// 7) Build struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	dur, err := parseDurationFlexible(v.Get("shutdown_timeout"), 15*time.Second)
	if err != nil {
		logger.Warn("invalid shutdown_timeout; using default 15s",
			zap.Any("value", v.Get("shutdown_timeout")), zap.Error(err))
	}
	cfg.ShutdownTimeout = dur

	// 8) Validate
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func mergeConfigFiles(logger *zap.Logger, v *viper.Viper) {
	for _, ext := range [...]string{"yaml", "yml", "json", "toml"} {
		file := "config." + ext
		if _, err := os.Stat(file); err != nil {
			continue
		}
		b, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("cannot read config file", zap.String("file", file), zap.Error(err))
			continue
		}
		v.SetConfigType(ext)
		if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
			logger.Warn("cannot decode config file", zap.String("file", file), zap.Error(err))
			continue
		}
		logger.Info("Loaded config file", zap.String("file", file))
	}
}

func allKeys() []string {
	return []string{
		"env", "log_level",
		"http_port", "shutdown_timeout", "max_request_body_bytes",
		"rate_limit", "rate_limit_burst",
		"enable_cors",
		"cors_allowed_origins", "cors_allowed_methods", "cors_allowed_headers",
		"cors_exposed_headers", "cors_allow_credentials", "cors_max_age",
		"default_language", "default_currency", "language_matching", "currencies_file",
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")

	v.SetDefault("http_port", 8080)
	v.SetDefault("shutdown_timeout", "15s")
	v.SetDefault("max_request_body_bytes", int64(64<<10))
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_limit_burst", 20)

	// Neutral CORS defaults
	v.SetDefault("enable_cors", false)
	v.SetDefault("cors_allowed_origins", []string{})
	v.SetDefault("cors_allowed_methods", []string{})
	v.SetDefault("cors_allowed_headers", []string{})
	v.SetDefault("cors_exposed_headers", []string{})
	v.SetDefault("cors_allow_credentials", false)
	v.SetDefault("cors_max_age", 0)

	v.SetDefault("default_language", "UA")
	v.SetDefault("default_currency", "UAH")
	v.SetDefault("language_matching", "strict")
	v.SetDefault("currencies_file", "")
}

// normalizeListKeys coerces JSON-string values into []string for the given keys.
func normalizeListKeys(logger *zap.Logger, v *viper.Viper, keys ...string) error {
	for _, key := range keys {
		val := v.Get(key)
		switch t := val.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				continue
			}
			var arr []string
			if err := json.Unmarshal([]byte(s), &arr); err != nil {
				return fmt.Errorf("config key %q expects a JSON array string, got %q: %w", key, s, err)
			}
			v.Set(key, arr)
		case []interface{}:
			arr := make([]string, 0, len(t))
			for _, e := range t {
				arr = append(arr, fmt.Sprint(e))
			}
			v.Set(key, arr)
		case []string, nil:
			// already correct or unset
		default:
			logger.Warn("unexpected type for list key; expected JSON array/string",
				zap.String("key", key), zap.Any("value", t))
		}
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
	"dpanic": true, "panic": true, "fatal": true,
}

func validateConfig(cfg Config) error {
	var missing []string
	var invalid []string

	if env := cfg.Env; env != "dev" && env != "prod" {
		invalid = append(invalid, `env must be "dev" or "prod"`)
	}
	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		invalid = append(invalid, "log_level must be one of debug, info, warn, error, dpanic, panic, fatal")
	}

	// Port sanity
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		invalid = append(invalid, "http_port must be in 1..65535")
	}
	if cfg.MaxRequestBodyBytes < 0 {
		invalid = append(invalid, "max_request_body_bytes must be >= 0")
	}
	if cfg.RateLimit < 0 {
		invalid = append(invalid, "rate_limit must be >= 0")
	}
	if cfg.RateLimit > 0 && cfg.RateLimitBurst < 1 {
		invalid = append(invalid, "rate_limit_burst must be >= 1 when rate_limit is set")
	}

	// CORS sanity
	if cfg.CORS.EnableCORS {
		if len(cfg.CORS.CORSAllowedOrigins) == 0 {
			missing = append(missing, "CORS: cors_allowed_origins (JSON array) required when enable_cors=true")
		}
		if len(cfg.CORS.CORSAllowedMethods) == 0 {
			missing = append(missing, "CORS: cors_allowed_methods (JSON array) required when enable_cors=true")
		}
		for _, o := range cfg.CORS.CORSAllowedOrigins {
			if o == "*" && cfg.CORS.CORSAllowCredentials {
				invalid = append(invalid, `CORS: cannot use "*" in cors_allowed_origins when cors_allow_credentials=true`)
				break
			}
		}
		if cfg.CORS.CORSMaxAge < 0 {
			invalid = append(invalid, "CORS: cors_max_age must be >= 0")
		}
	}

	// Formatting defaults
	mode, err := grammar.ParseMatchMode(cfg.Format.LanguageMatching)
	if err != nil {
		invalid = append(invalid, `language_matching must be "strict" or "lenient"`)
	}
	if strings.TrimSpace(cfg.Format.DefaultLanguage) == "" {
		missing = append(missing, EnvPrefix+"_DEFAULT_LANGUAGE (or --default_language)")
	} else if _, ok := grammar.Match(cfg.Format.DefaultLanguage, mode); !ok && err == nil {
		invalid = append(invalid, fmt.Sprintf("default_language %q matches no supported language", cfg.Format.DefaultLanguage))
	}
	if strings.TrimSpace(cfg.Format.DefaultCurrency) == "" {
		missing = append(missing, EnvPrefix+"_DEFAULT_CURRENCY (or --default_currency)")
	}

	if len(missing) == 0 && len(invalid) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(invalid, ", "))
	}
	return fmt.Errorf("configuration errors: %s", strings.Join(parts, " | "))
}
