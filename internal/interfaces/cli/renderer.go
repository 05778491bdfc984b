package cli

import (
	"fmt"
	"io"

	appbilling "github.com/usagebill/invoicer/internal/application/billing"
	"github.com/usagebill/invoicer/internal/domain/billing"
)

// Renderer writes completed invoice runs as plain text. Monetary values
// render with exactly two decimal places; rounding happens here and
// nowhere earlier in the pipeline.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// RenderRun writes all invoices, rejection reasons, and a summary line
func (r *Renderer) RenderRun(run *appbilling.InvoiceRun) error {
	for _, invoice := range run.Invoices {
		if err := r.RenderInvoice(invoice); err != nil {
			return err
		}
	}

	for _, reason := range run.Reasons() {
		if _, err := fmt.Fprintf(r.w, "rejected: %s\n", reason); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(r.w, "processed %d entries: %d invoiced, %d rejected\n",
		run.TotalRows, run.ValidCount, run.RejectedCount)
	return err
}

// RenderInvoice writes one invoice as a single line with its cost breakdown
func (r *Renderer) RenderInvoice(invoice billing.Invoice) error {
	_, err := fmt.Fprintf(r.w, "customer %s: api=%s storage=%s compute=%s total=%s\n",
		invoice.CustomerID,
		invoice.APICost.StringFixed(2),
		invoice.StorageCost.StringFixed(2),
		invoice.ComputeCost.StringFixed(2),
		invoice.Total().StringFixed(2))
	return err
}
