package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"edgegate/domain/verdict"
	"edgegate/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database   DatabaseConfig
	Data       DataConfig
	Server     ServerConfig
	Validation ValidationConfig
}

// DatabaseConfig holds trade-history database settings. URL may be empty
// when history comes from a file instead.
type DatabaseConfig struct {
	URL string
}

// DataConfig holds file-based history settings
type DataConfig struct {
	OutcomeFile string
}

// ServerConfig holds gating API settings
type ServerConfig struct {
	Port string
}

// ValidationConfig holds the engine policy: promotion thresholds and the
// default sweep/walk-forward parameters. Every threshold is overridable by
// environment so development and production gates differ without a rebuild.
type ValidationConfig struct {
	Thresholds        verdict.PromotionThresholds
	StrengthThreshold float64
	TrainRatio        float64
	SweepWorkers      int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	validation, err := loadValidationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load validation configuration")
	}

	cfg := &Config{
		Database:   DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Data:       DataConfig{OutcomeFile: os.Getenv("OUTCOME_FILE")},
		Server:     ServerConfig{Port: envOr("API_PORT", "8080")},
		Validation: *validation,
	}
	return cfg, nil
}

func loadValidationConfig() (*ValidationConfig, error) {
	thresholds := verdict.DefaultThresholds()

	var err error
	if thresholds.ProductionMinSamples, err = envInt("PRODUCTION_MIN_SAMPLES", thresholds.ProductionMinSamples); err != nil {
		return nil, err
	}
	if thresholds.DevelopmentMinSamples, err = envInt("DEVELOPMENT_MIN_SAMPLES", thresholds.DevelopmentMinSamples); err != nil {
		return nil, err
	}
	if thresholds.ProductionMaxP, err = envDecimal("PRODUCTION_MAX_P", thresholds.ProductionMaxP); err != nil {
		return nil, err
	}
	if thresholds.DevelopmentMaxP, err = envDecimal("DEVELOPMENT_MAX_P", thresholds.DevelopmentMaxP); err != nil {
		return nil, err
	}
	if thresholds.ProductionMinWinRate, err = envDecimal("PRODUCTION_MIN_WIN_RATE", thresholds.ProductionMinWinRate); err != nil {
		return nil, err
	}
	if err = thresholds.Validate(); err != nil {
		return nil, err
	}

	strength, err := envFloat("STRENGTH_THRESHOLD", 0.6)
	if err != nil {
		return nil, err
	}
	trainRatio, err := envFloat("TRAIN_RATIO", 0.7)
	if err != nil {
		return nil, err
	}
	workers, err := envInt("SWEEP_WORKERS", 0)
	if err != nil {
		return nil, err
	}

	return &ValidationConfig{
		Thresholds:        thresholds,
		StrengthThreshold: strength,
		TrainRatio:        trainRatio,
		SweepWorkers:      workers,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid integer for %s: %q", key, v)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid float for %s: %q", key, v)
	}
	return f, nil
}

func envDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid decimal for %s: %q", key, v)
	}
	return d, nil
}
