// Package config loads the workout backend settings from environment
// variables. Every field has a default. Unparseable values and invalid
// combinations are reported together by Load rather than repaired.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry tracing settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// LogConfig controls the global zerolog logger.
type LogConfig struct {
	Level      string // debug|info|warn|error|fatal|panic
	Pretty     bool   // console writer instead of JSON
	File       string // optional rotating log file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DBConfig selects and addresses the relational store.
type DBConfig struct {
	Driver string // sqlite|postgres
	Path   string // sqlite file
	URL    string // postgres DSN
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test

	Log            LogConfig
	SwaggerEnabled bool
	APIBasePath    string

	DB DBConfig

	// Workouts
	DefaultTrainerID string        // identity used when X-Trainer-ID is absent
	LinkTTL          time.Duration // lifetime of a shared workout link
	PublicBaseURL    string        // prefix for share URLs, may be empty

	// Rate limiting
	RateRPS   float64
	RateBurst int

	CORS     CORSConfig
	Security SecurityConfig

	IdempotencyTTL time.Duration

	OTEL OTELConfig
}

// Load reads the environment, applies defaults and validates the result. The
// returned error joins every problem found.
func Load() (Config, error) {
	var env envReader
	cfg := Config{
		Port:              env.str("PORT", "8080"),
		ReadTimeout:       env.dur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: env.dur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      env.dur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       env.dur("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   env.dur("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxHeaderBytes:    env.integer("MAX_HEADER_BYTES", 1<<20),
		GinMode:           ginMode(env.str("GIN_MODE", "release")),

		Log: LogConfig{
			Level:      logLevel(env.str("LOG_LEVEL", "info")),
			Pretty:     env.flag("LOG_PRETTY", false),
			File:       env.str("LOG_FILE", ""),
			MaxSizeMB:  env.integer("LOG_MAX_SIZE_MB", 50),
			MaxBackups: env.integer("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: env.integer("LOG_MAX_AGE_DAYS", 30),
		},
		SwaggerEnabled: env.flag("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(env.str("API_BASE_PATH", "/api/v1")),

		DB: DBConfig{
			Driver: strings.ToLower(env.str("DB_DRIVER", "sqlite")),
			Path:   env.str("DB_PATH", "workouts.db"),
			URL:    env.str("DATABASE_URL", ""),
		},

		DefaultTrainerID: env.str("DEFAULT_TRAINER_ID", "trainer-1"),
		LinkTTL:          env.dur("LINK_TTL", 7*24*time.Hour),
		PublicBaseURL:    strings.TrimRight(env.str("PUBLIC_BASE_URL", ""), "/"),

		RateRPS:   env.float("RATE_RPS", 5),
		RateBurst: env.integer("RATE_BURST", 10),

		CORS:     CORSConfig{AllowedOrigins: splitCSV(env.str("CORS_ALLOWED_ORIGINS", ""))},
		Security: SecurityConfig{EnableHSTS: env.flag("ENABLE_HSTS", false), HSTSMaxAge: env.dur("HSTS_MAX_AGE", 180*24*time.Hour)},

		IdempotencyTTL: env.dur("IDEMPOTENCY_TTL", 24*time.Hour),

		OTEL: OTELConfig{
			Enabled:     env.flag("OTEL_ENABLED", false),
			Endpoint:    env.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    env.flag("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: env.str("OTEL_SERVICE_NAME", "go-workout-backend"),
			SampleRatio: env.float("OTEL_TRACES_SAMPLER_ARG", 1),
		},
	}
	return cfg, errors.Join(append(env.errs, cfg.validate()...)...)
}

func (cfg Config) validate() []error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error, fatal, panic", cfg.Log.Level))
	}
	check(min(cfg.ReadTimeout, cfg.ReadHeaderTimeout, cfg.WriteTimeout, cfg.IdleTimeout, cfg.ShutdownTimeout) > 0,
		"server timeouts must be positive")
	check(cfg.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")
	check(cfg.Log.MaxSizeMB > 0, "LOG_MAX_SIZE_MB must be > 0")
	check(cfg.Log.MaxBackups >= 0 && cfg.Log.MaxAgeDays >= 0, "LOG_MAX_BACKUPS and LOG_MAX_AGE_DAYS must be >= 0")

	switch cfg.DB.Driver {
	case "sqlite":
	case "postgres":
		check(cfg.DB.URL != "", "DATABASE_URL is required when DB_DRIVER=postgres")
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not sqlite or postgres", cfg.DB.Driver))
	}

	check(cfg.LinkTTL > 0, "LINK_TTL must be > 0")
	check(cfg.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(cfg.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(cfg.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(cfg.IdempotencyTTL > 0, "IDEMPOTENCY_TTL must be > 0")
	check(cfg.OTEL.SampleRatio >= 0 && cfg.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	return errs
}

// envReader reads trimmed environment values and records parse failures
// instead of falling back to the default.
type envReader struct {
	errs []error
}

func (e *envReader) str(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func (e *envReader) integer(k string, def int) int {
	return parse(e, k, def, strconv.Atoi)
}

func (e *envReader) float(k string, def float64) float64 {
	return parse(e, k, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func (e *envReader) dur(k string, def time.Duration) time.Duration {
	return parse(e, k, def, time.ParseDuration)
}

func (e *envReader) flag(k string, def bool) bool {
	return parse(e, k, def, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "1", "true", "yes", "y", "on":
			return true, nil
		case "0", "false", "no", "n", "off":
			return false, nil
		}
		return false, errors.New("not a boolean")
	})
}

func parse[T any](e *envReader, k string, def T, fn func(string) (T, error)) T {
	raw := e.str(k, "")
	if raw == "" {
		return def
	}
	v, err := fn(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s=%q: %w", k, raw, err))
		return def
	}
	return v
}

// ginMode maps unknown modes to release.
func ginMode(m string) string {
	switch m = strings.ToLower(m); m {
	case "debug", "release", "test":
		return m
	}
	return "release"
}

func logLevel(l string) string {
	if l = strings.ToLower(l); l == "warning" {
		return "warn"
	}
	return l
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath returns "/" or a path with a leading and no trailing slash.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
