package billing

import (
	"github.com/shopspring/decimal"

	"github.com/usagebill/invoicer/internal/domain/shared"
)

// PricingSchedule is a value object holding the tier threshold and unit
// rates applied when invoicing usage. It is immutable once constructed;
// per-test or per-environment schedules are created through
// NewPricingSchedule rather than by mutating the default.
type PricingSchedule struct {
	APITierThreshold     int64           // Calls billed at the tier-1 rate before the discount applies
	APIRateTier1         decimal.Decimal // Rate per call up to and including the threshold
	APIRateTier2         decimal.Decimal // Discounted rate per call beyond the threshold
	StorageRatePerGB     decimal.Decimal // Linear rate per gigabyte of storage
	ComputeRatePerMinute decimal.Decimal // Linear rate per compute minute
}

// NewPricingSchedule creates a pricing schedule with validation
func NewPricingSchedule(
	apiTierThreshold int64,
	apiRateTier1 decimal.Decimal,
	apiRateTier2 decimal.Decimal,
	storageRatePerGB decimal.Decimal,
	computeRatePerMinute decimal.Decimal,
) (PricingSchedule, error) {
	if apiTierThreshold < 0 {
		return PricingSchedule{}, shared.NewDomainError("INVALID_THRESHOLD", "API tier threshold cannot be negative")
	}

	return PricingSchedule{
		APITierThreshold:     apiTierThreshold,
		APIRateTier1:         apiRateTier1,
		APIRateTier2:         apiRateTier2,
		StorageRatePerGB:     storageRatePerGB,
		ComputeRatePerMinute: computeRatePerMinute,
	}, nil
}

// DefaultPricing returns the standard pricing schedule: the first 10,000
// API calls bill at 0.01 per call and the excess at the volume-discounted
// 0.008; storage bills at 0.25 per GB and compute at 0.05 per minute.
func DefaultPricing() PricingSchedule {
	return PricingSchedule{
		APITierThreshold:     10000,
		APIRateTier1:         decimal.RequireFromString("0.01"),
		APIRateTier2:         decimal.RequireFromString("0.008"),
		StorageRatePerGB:     decimal.RequireFromString("0.25"),
		ComputeRatePerMinute: decimal.RequireFromString("0.05"),
	}
}
