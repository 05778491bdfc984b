package billing

import (
	"github.com/usagebill/invoicer/internal/domain/shared"
	"github.com/usagebill/invoicer/internal/domain/shared/valueobject"
)

// Invoice is the immutable result of applying a pricing schedule to one
// usage record. The total is never stored; it is always derived from the
// three cost components so it cannot drift from them.
type Invoice struct {
	CustomerID  string            // Copied from the source usage record
	APICost     valueobject.Money // Tiered API call cost
	StorageCost valueobject.Money // Linear storage cost
	ComputeCost valueobject.Money // Linear compute cost
}

// Total returns the invoice total as the exact sum of the three cost
// components. All components share a currency, so the addition cannot fail.
func (i Invoice) Total() valueobject.Money {
	return i.APICost.MustAdd(i.StorageCost).MustAdd(i.ComputeCost)
}

// NewInvoice creates an invoice from its cost components.
// All components must share the same currency.
func NewInvoice(customerID string, apiCost, storageCost, computeCost valueobject.Money) (Invoice, error) {
	if apiCost.Currency() != storageCost.Currency() || apiCost.Currency() != computeCost.Currency() {
		return Invoice{}, shared.NewDomainError("CURRENCY_MISMATCH", "Invoice cost components must share a currency")
	}

	return Invoice{
		CustomerID:  customerID,
		APICost:     apiCost,
		StorageCost: storageCost,
		ComputeCost: computeCost,
	}, nil
}
