package ingest

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/usagebill/invoicer/internal/domain/billing"
)

// Input field names expected on each entry. Unknown extra keys are ignored.
const (
	FieldCustomerID     = "CustomerId"
	FieldAPICalls       = "API_Calls"
	FieldStorageGB      = "Storage_GB"
	FieldComputeMinutes = "Compute_Minutes"
)

// RecordLoader parses a JSON array of loosely-typed usage entries into
// validated usage records. Every input element maps to exactly one outcome:
// either a record or a rejection reason. A failure on one element never
// aborts processing of its siblings; only an unreadable source, malformed
// JSON, or a non-array root fails the whole load.
type RecordLoader struct {
	maxReasons int
}

// LoaderOption is a functional option for RecordLoader configuration
type LoaderOption func(*RecordLoader)

// WithMaxReasons caps how many rejection reasons are collected.
// Non-positive (the default) keeps every reason.
func WithMaxReasons(n int) LoaderOption {
	return func(l *RecordLoader) {
		l.maxReasons = n
	}
}

// NewRecordLoader creates a new record loader
func NewRecordLoader(opts ...LoaderOption) *RecordLoader {
	loader := &RecordLoader{}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// LoadResult holds the outcome of one load: valid records and rejections,
// each preserving input array order.
type LoadResult struct {
	Records    []*billing.UsageRecord
	Rejections *ErrorCollection
	TotalRows  int
}

// Reasons returns the rejection reasons in input order
func (r *LoadResult) Reasons() []string {
	return r.Rejections.Reasons()
}

// ValidCount returns the number of valid records
func (r *LoadResult) ValidCount() int {
	return len(r.Records)
}

// RejectedCount returns the number of rejected entries
func (r *LoadResult) RejectedCount() int {
	return r.Rejections.TotalCount()
}

// LoadFile reads and parses the file at path.
// A missing or unreadable file is a batch-level failure.
func (l *RecordLoader) LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	return l.Load(data)
}

// Load parses raw JSON content whose root must be an array of entries.
func (l *RecordLoader) Load(data []byte) (*LoadResult, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidInput
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, ErrRootNotArray
	}

	entries := root.Array()
	result := &LoadResult{
		Records:    make([]*billing.UsageRecord, 0, len(entries)),
		Rejections: NewErrorCollection(l.maxReasons),
		TotalRows:  len(entries),
	}

	for i, entry := range entries {
		record, entryErr := l.parseEntry(i, entry)
		if entryErr != nil {
			result.Rejections.Add(*entryErr)
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// parseEntry validates one input element. Fields validate in a fixed order
// and the first failure short-circuits the rest of the entry, so each
// rejected entry carries exactly one reason.
func (l *RecordLoader) parseEntry(index int, entry gjson.Result) (*billing.UsageRecord, *EntryError) {
	if !entry.IsObject() {
		err := NewEntryErrorWithValue(index, UnknownCustomer, ErrCodeIngestNotObject,
			"entry is not an object", kindName(entry))
		return nil, &err
	}

	customerID, ok := coerceText(entry.Get(FieldCustomerID))
	if !ok || isBlank(customerID) {
		err := NewEntryError(index, UnknownCustomer, ErrCodeIngestMissingCustomer,
			"missing/empty "+FieldCustomerID)
		return nil, &err
	}

	apiCalls, err := coerceInt64(entry.Get(FieldAPICalls))
	if err != nil {
		e := NewEntryErrorWithValue(index, customerID, ErrCodeIngestInvalidField,
			"invalid "+FieldAPICalls, err.Error())
		return nil, &e
	}

	storageGB, err := coerceDecimal(entry.Get(FieldStorageGB))
	if err != nil {
		e := NewEntryErrorWithValue(index, customerID, ErrCodeIngestInvalidField,
			"invalid "+FieldStorageGB, err.Error())
		return nil, &e
	}

	computeMinutes, err := coerceInt64(entry.Get(FieldComputeMinutes))
	if err != nil {
		e := NewEntryErrorWithValue(index, customerID, ErrCodeIngestInvalidField,
			"invalid "+FieldComputeMinutes, err.Error())
		return nil, &e
	}

	record, err := billing.NewUsageRecord(customerID, apiCalls, storageGB, computeMinutes)
	if err != nil {
		e := NewEntryError(index, customerID, ErrCodeIngestMissingCustomer, err.Error())
		return nil, &e
	}

	return record, nil
}
