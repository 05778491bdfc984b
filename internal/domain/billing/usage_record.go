package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/usagebill/invoicer/internal/domain/shared"
)

// UsageRecord represents one customer's validated usage for a billing period.
// Once created, usage records cannot be modified - corrections must be made
// with new records. Customer IDs are not required to be unique within a
// batch; each record produces its own invoice.
type UsageRecord struct {
	CustomerID     string          // Non-empty customer identifier
	APICalls       int64           // Number of API calls made
	StorageGB      decimal.Decimal // Storage used, fractional gigabytes allowed
	ComputeMinutes int64           // Compute minutes consumed
}

// NewUsageRecord creates a new usage record with validation.
// The customer ID must contain at least one non-whitespace character.
// Negative quantities are accepted here and flow through to a negative
// invoice; rejecting them is the responsibility of upstream validation.
func NewUsageRecord(customerID string, apiCalls int64, storageGB decimal.Decimal, computeMinutes int64) (*UsageRecord, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &UsageRecord{
		CustomerID:     customerID,
		APICalls:       apiCalls,
		StorageGB:      storageGB,
		ComputeMinutes: computeMinutes,
	}, nil
}
