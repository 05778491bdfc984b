package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/usagebill/invoicer/internal/domain/billing"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	Ingest  IngestConfig
	Pricing PricingConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string `validate:"required"`
	Env  string `validate:"required"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error fatal"`
	Format string `validate:"oneof=json console"`
	Output string `validate:"required"`
}

// IngestConfig holds input ingestion settings
type IngestConfig struct {
	// InputPath is the default usage file consulted when no path argument
	// is given on the command line
	InputPath string `validate:"required"`

	// MaxReasons caps collected rejection reasons; 0 keeps all of them
	MaxReasons int `validate:"gte=0"`
}

// PricingConfig holds the pricing schedule applied to usage. Rates are
// decimal strings so no precision is lost between file and schedule.
type PricingConfig struct {
	APITierThreshold     int64  `validate:"gte=0"`
	APIRateTier1         string `validate:"required"`
	APIRateTier2         string `validate:"required"`
	StorageRatePerGB     string `validate:"required"`
	ComputeRatePerMinute string `validate:"required"`
}

// Schedule converts the pricing configuration into a domain pricing schedule
func (p PricingConfig) Schedule() (billing.PricingSchedule, error) {
	tier1, err := decimal.NewFromString(p.APIRateTier1)
	if err != nil {
		return billing.PricingSchedule{}, fmt.Errorf("invalid pricing.api_rate_tier1: %w", err)
	}
	tier2, err := decimal.NewFromString(p.APIRateTier2)
	if err != nil {
		return billing.PricingSchedule{}, fmt.Errorf("invalid pricing.api_rate_tier2: %w", err)
	}
	storage, err := decimal.NewFromString(p.StorageRatePerGB)
	if err != nil {
		return billing.PricingSchedule{}, fmt.Errorf("invalid pricing.storage_rate_per_gb: %w", err)
	}
	compute, err := decimal.NewFromString(p.ComputeRatePerMinute)
	if err != nil {
		return billing.PricingSchedule{}, fmt.Errorf("invalid pricing.compute_rate_per_minute: %w", err)
	}

	return billing.NewPricingSchedule(p.APITierThreshold, tier1, tier2, storage, compute)
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with INVOICER_ prefix (e.g., INVOICER_LOG_LEVEL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("INVOICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Ingest: IngestConfig{
			InputPath:  v.GetString("ingest.input_path"),
			MaxReasons: v.GetInt("ingest.max_reasons"),
		},
		Pricing: PricingConfig{
			APITierThreshold:     v.GetInt64("pricing.api_tier_threshold"),
			APIRateTier1:         v.GetString("pricing.api_rate_tier1"),
			APIRateTier2:         v.GetString("pricing.api_rate_tier2"),
			StorageRatePerGB:     v.GetString("pricing.storage_rate_per_gb"),
			ComputeRatePerMinute: v.GetString("pricing.compute_rate_per_minute"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields.
// The pricing defaults mirror the standard schedule in the billing domain.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "invoicer"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Ingest.InputPath == "" {
		cfg.Ingest.InputPath = "usage.json"
	}
	if cfg.Pricing.APITierThreshold == 0 {
		cfg.Pricing.APITierThreshold = 10000
	}
	if cfg.Pricing.APIRateTier1 == "" {
		cfg.Pricing.APIRateTier1 = "0.01"
	}
	if cfg.Pricing.APIRateTier2 == "" {
		cfg.Pricing.APIRateTier2 = "0.008"
	}
	if cfg.Pricing.StorageRatePerGB == "" {
		cfg.Pricing.StorageRatePerGB = "0.25"
	}
	if cfg.Pricing.ComputeRatePerMinute == "" {
		cfg.Pricing.ComputeRatePerMinute = "0.05"
	}
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var details []string
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, e := range validationErrors {
				details = append(details, fmt.Sprintf("%s failed %q validation", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(details, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Rates must also parse as decimals
	if _, err := c.Pricing.Schedule(); err != nil {
		return err
	}

	return nil
}
