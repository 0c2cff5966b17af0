package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/application/usecases/commands"
)

// Oracle providers.
const (
	OracleLocal  = "local"
	OracleGemini = "gemini"
)

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	TickInterval        time.Duration
	MoveProbability     float64
	MoveDelta           float64
	IdleThreshold       time.Duration
	SmartAssignSchedule string

	OracleProvider string
	OracleTimeout  time.Duration
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string

	FirebaseCredentialsFile   string
	FirebaseCredentialsBase64 string

	SeedFile string
}

// PushEnabled reports whether Firebase credentials were provided.
func (c Config) PushEnabled() bool {
	return c.FirebaseCredentialsFile != "" || c.FirebaseCredentialsBase64 != ""
}

// TickSchedule is the cron descriptor of the telemetry tick.
func (c Config) TickSchedule() string {
	return "@every " + c.TickInterval.String()
}

// LoadConfig reads the configuration through getenv, typically os.Getenv.
// Unset keys take their defaults; malformed values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		HTTPPort: p.text("HTTP_PORT", "8080"),
		LogLevel: p.level("LOG_LEVEL", slog.LevelInfo),

		TickInterval:        p.duration("TICK_INTERVAL", 5*time.Second),
		MoveProbability:     p.float("MOVE_PROBABILITY", commands.DefaultMoveProbability),
		MoveDelta:           p.float("MOVE_DELTA", commands.DefaultMoveDelta),
		IdleThreshold:       p.duration("IDLE_THRESHOLD", commands.DefaultIdleThreshold),
		SmartAssignSchedule: p.text("SMART_ASSIGN_SCHEDULE", ""),

		OracleProvider: strings.ToLower(p.text("ORACLE_PROVIDER", "")),
		OracleTimeout:  p.duration("ORACLE_TIMEOUT", commands.DefaultOracleTimeout),
		GeminiAPIKey:   p.text("GEMINI_API_KEY", ""),
		GeminiModel:    p.text("GEMINI_MODEL", ""),
		GeminiBaseURL:  p.text("GEMINI_BASE_URL", ""),

		FirebaseCredentialsFile:   p.text("FIREBASE_CREDENTIALS_FILE", ""),
		FirebaseCredentialsBase64: p.text("FIREBASE_CREDENTIALS_BASE64", ""),

		SeedFile: p.text("SEED_FILE", "configs/seed.yaml"),
	}

	if cfg.OracleProvider == "" {
		cfg.OracleProvider = OracleLocal
		if cfg.GeminiAPIKey != "" {
			cfg.OracleProvider = OracleGemini
		}
	}
	switch cfg.OracleProvider {
	case OracleLocal:
	case OracleGemini:
		if cfg.GeminiAPIKey == "" {
			p.fail("GEMINI_API_KEY", errors.New("required when ORACLE_PROVIDER is gemini"))
		}
	default:
		p.fail("ORACLE_PROVIDER", fmt.Errorf("%q is neither %s nor %s", cfg.OracleProvider, OracleLocal, OracleGemini))
	}
	if cfg.TickInterval <= 0 {
		p.fail("TICK_INTERVAL", errors.New("must be positive"))
	}
	if cfg.MoveProbability < 0 || cfg.MoveProbability > 1 {
		p.fail("MOVE_PROBABILITY", errors.New("must be between 0 and 1"))
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envParser struct {
	getenv func(string) string
	errs   []error
}

func (p *envParser) fail(key string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
}

func (p *envParser) text(key, fallback string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (p *envParser) duration(key string, fallback time.Duration) time.Duration {
	raw := p.text(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return d
}

func (p *envParser) float(key string, fallback float64) float64 {
	raw := p.text(key, "")
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return f
}

func (p *envParser) level(key string, fallback slog.Level) slog.Level {
	raw := p.text(key, "")
	if raw == "" {
		return fallback
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(raw)); err != nil {
		p.fail(key, err)
		return fallback
	}
	return l
}
