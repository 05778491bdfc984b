package billing

import (
	"github.com/shopspring/decimal"

	"github.com/usagebill/invoicer/internal/domain/shared/valueobject"
)

// Calculator is a pure domain service that maps usage records to invoices
// using a fixed pricing schedule. It has no side effects and no error
// conditions: any record yields an invoice, and negative quantities flow
// through arithmetically to negative cost components.
type Calculator struct {
	pricing PricingSchedule
}

// NewCalculator creates a calculator bound to the given pricing schedule
func NewCalculator(pricing PricingSchedule) *Calculator {
	return &Calculator{pricing: pricing}
}

// Pricing returns the schedule this calculator applies
func (c *Calculator) Pricing() PricingSchedule {
	return c.pricing
}

// Calculate produces the invoice for one usage record.
//
// API calls follow a two-bracket progressive schedule: the first
// APITierThreshold calls always bill at the tier-1 rate regardless of total
// volume, and only the excess bills at the discounted tier-2 rate. Storage
// and compute bill linearly. All arithmetic is exact decimal; rounding to
// presentation precision is left to the renderer.
func (c *Calculator) Calculate(record *UsageRecord) Invoice {
	tier1Units := record.APICalls
	if tier1Units > c.pricing.APITierThreshold {
		tier1Units = c.pricing.APITierThreshold
	}
	tier2Units := record.APICalls - c.pricing.APITierThreshold
	if tier2Units < 0 {
		tier2Units = 0
	}

	apiCost := decimal.NewFromInt(tier1Units).Mul(c.pricing.APIRateTier1).
		Add(decimal.NewFromInt(tier2Units).Mul(c.pricing.APIRateTier2))
	storageCost := record.StorageGB.Mul(c.pricing.StorageRatePerGB)
	computeCost := decimal.NewFromInt(record.ComputeMinutes).Mul(c.pricing.ComputeRatePerMinute)

	return Invoice{
		CustomerID:  record.CustomerID,
		APICost:     valueobject.NewMoneyUSD(apiCost),
		StorageCost: valueobject.NewMoneyUSD(storageCost),
		ComputeCost: valueobject.NewMoneyUSD(computeCost),
	}
}
