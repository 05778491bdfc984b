package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usagebill/invoicer/internal/domain/billing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "invoicer", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, "usage.json", cfg.Ingest.InputPath)
	assert.Equal(t, 0, cfg.Ingest.MaxReasons)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("INVOICER_LOG_LEVEL", "debug")
	t.Setenv("INVOICER_INGEST_INPUT_PATH", "custom.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "custom.json", cfg.Ingest.InputPath)
}

func TestLoadValidation(t *testing.T) {
	t.Run("rejects unknown log format", func(t *testing.T) {
		t.Setenv("INVOICER_LOG_FORMAT", "xml")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("rejects non-decimal pricing rate", func(t *testing.T) {
		t.Setenv("INVOICER_PRICING_API_RATE_TIER1", "cheap")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestPricingSchedule(t *testing.T) {
	t.Run("defaults match the standard schedule", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		schedule, err := cfg.Pricing.Schedule()
		require.NoError(t, err)

		expected := billing.DefaultPricing()
		assert.Equal(t, expected.APITierThreshold, schedule.APITierThreshold)
		assert.True(t, expected.APIRateTier1.Equal(schedule.APIRateTier1))
		assert.True(t, expected.APIRateTier2.Equal(schedule.APIRateTier2))
		assert.True(t, expected.StorageRatePerGB.Equal(schedule.StorageRatePerGB))
		assert.True(t, expected.ComputeRatePerMinute.Equal(schedule.ComputeRatePerMinute))
	})

	t.Run("overridden rates flow into the schedule", func(t *testing.T) {
		t.Setenv("INVOICER_PRICING_API_TIER_THRESHOLD", "500")
		t.Setenv("INVOICER_PRICING_API_RATE_TIER1", "0.02")

		cfg, err := Load()
		require.NoError(t, err)

		schedule, err := cfg.Pricing.Schedule()
		require.NoError(t, err)
		assert.Equal(t, int64(500), schedule.APITierThreshold)
		assert.Equal(t, "0.02", schedule.APIRateTier1.String())
	})
}
