package billing

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainBilling "github.com/usagebill/invoicer/internal/domain/billing"
	"github.com/usagebill/invoicer/internal/infrastructure/ingest"
)

// InvoiceRunService orchestrates one batch invoicing run: load the usage
// entries, compute an invoice per valid record, and collect rejection
// reasons for the malformed ones. The whole run is one bounded, in-memory
// pass; element failures never abort it, and only batch-level load
// failures surface as errors.
type InvoiceRunService struct {
	loader     *ingest.RecordLoader
	calculator *domainBilling.Calculator
	logger     *zap.Logger
}

// NewInvoiceRunService creates a new InvoiceRunService
func NewInvoiceRunService(
	loader *ingest.RecordLoader,
	calculator *domainBilling.Calculator,
	logger *zap.Logger,
) *InvoiceRunService {
	return &InvoiceRunService{
		loader:     loader,
		calculator: calculator,
		logger:     logger,
	}
}

// InvoiceRun is the result of one completed batch run. Invoices preserve
// the input order of their source records, and rejections preserve the
// input order of the rejected entries.
type InvoiceRun struct {
	RunID         uuid.UUID
	Invoices      []domainBilling.Invoice
	Rejections    []ingest.EntryError
	TotalRows     int
	ValidCount    int
	RejectedCount int
	Duration      time.Duration
}

// Reasons returns the rejection reasons in input order
func (r *InvoiceRun) Reasons() []string {
	reasons := make([]string, len(r.Rejections))
	for i, rej := range r.Rejections {
		reasons[i] = rej.Error()
	}
	return reasons
}

// RunFile executes a batch run against the usage file at path
func (s *InvoiceRunService) RunFile(path string) (*InvoiceRun, error) {
	runID := uuid.New()
	s.logger.Info("invoice run started",
		zap.String("run_id", runID.String()),
		zap.String("input_path", path))

	started := time.Now()
	result, err := s.loader.LoadFile(path)
	if err != nil {
		s.logger.Error("invoice run failed",
			zap.String("run_id", runID.String()),
			zap.Error(err))
		return nil, err
	}

	return s.finishRun(runID, started, result), nil
}

// Run executes a batch run against raw JSON content
func (s *InvoiceRunService) Run(data []byte) (*InvoiceRun, error) {
	runID := uuid.New()
	s.logger.Info("invoice run started",
		zap.String("run_id", runID.String()),
		zap.Int("input_bytes", len(data)))

	started := time.Now()
	result, err := s.loader.Load(data)
	if err != nil {
		s.logger.Error("invoice run failed",
			zap.String("run_id", runID.String()),
			zap.Error(err))
		return nil, err
	}

	return s.finishRun(runID, started, result), nil
}

// finishRun computes invoices for the loaded records and assembles the run
func (s *InvoiceRunService) finishRun(runID uuid.UUID, started time.Time, result *ingest.LoadResult) *InvoiceRun {
	invoices := make([]domainBilling.Invoice, 0, len(result.Records))
	for _, record := range result.Records {
		invoices = append(invoices, s.calculator.Calculate(record))
	}

	for _, rejection := range result.Rejections.Errors() {
		s.logger.Debug("entry rejected",
			zap.String("run_id", runID.String()),
			zap.Int("index", rejection.Index),
			zap.String("customer", rejection.Customer),
			zap.String("reason", rejection.Message))
	}

	run := &InvoiceRun{
		RunID:         runID,
		Invoices:      invoices,
		Rejections:    result.Rejections.Errors(),
		TotalRows:     result.TotalRows,
		ValidCount:    result.ValidCount(),
		RejectedCount: result.RejectedCount(),
		Duration:      time.Since(started),
	}

	s.logger.Info("invoice run completed",
		zap.String("run_id", runID.String()),
		zap.Int("total_rows", run.TotalRows),
		zap.Int("valid", run.ValidCount),
		zap.Int("rejected", run.RejectedCount),
		zap.Duration("duration", run.Duration))

	return run
}
