package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Ingest error codes
const (
	// Batch-level errors
	ErrCodeIngestUnreadable   = "ERR_INGEST_UNREADABLE"
	ErrCodeIngestInvalidInput = "ERR_INGEST_INVALID_INPUT"
	ErrCodeIngestRootNotArray = "ERR_INGEST_ROOT_NOT_ARRAY"

	// Entry-level errors
	ErrCodeIngestNotObject       = "ERR_INGEST_NOT_OBJECT"
	ErrCodeIngestMissingCustomer = "ERR_INGEST_MISSING_CUSTOMER"
	ErrCodeIngestInvalidField    = "ERR_INGEST_INVALID_FIELD"
)

// Batch-level errors. Any of these aborts the whole load and yields zero
// valid records; entry-level failures never do.
var (
	// ErrInputNotFound is returned when the input source cannot be located or read
	ErrInputNotFound = errors.New("input not found/unreadable")

	// ErrInvalidInput is returned when the content is not syntactically valid JSON
	ErrInvalidInput = errors.New("invalid input")

	// ErrRootNotArray is returned when the parsed root is not an array
	ErrRootNotArray = errors.New("root is not an array")
)

// UnknownCustomer is the sentinel used in rejection reasons when the
// customer identifier itself was the failing field.
const UnknownCustomer = "UNKNOWN"

// EntryError represents the rejection of a single input entry
type EntryError struct {
	Index    int    `json:"index"`
	Customer string `json:"customer"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Value    string `json:"value,omitempty"`
}

// Error implements the error interface
func (e EntryError) Error() string {
	return fmt.Sprintf("entry %d (customer %s): %s", e.Index, e.Customer, e.Message)
}

// NewEntryError creates a new EntryError
func NewEntryError(index int, customer, code, message string) EntryError {
	if customer == "" {
		customer = UnknownCustomer
	}
	return EntryError{
		Index:    index,
		Customer: customer,
		Code:     code,
		Message:  message,
	}
}

// NewEntryErrorWithValue creates a new EntryError carrying the offending value
func NewEntryErrorWithValue(index int, customer, code, message, value string) EntryError {
	e := NewEntryError(index, customer, code, message)
	e.Value = value
	return e
}

// ErrorCollection manages rejection reasons in input order
type ErrorCollection struct {
	errors     []EntryError
	maxErrors  int // 0 = unlimited
	totalCount int
}

// NewErrorCollection creates a new ErrorCollection. A non-positive limit
// keeps every rejection, so callers see exactly one reason per malformed
// entry.
func NewErrorCollection(maxErrors int) *ErrorCollection {
	return &ErrorCollection{
		errors:    make([]EntryError, 0),
		maxErrors: maxErrors,
	}
}

// Add adds an error to the collection
func (ec *ErrorCollection) Add(err EntryError) {
	ec.totalCount++
	if ec.maxErrors <= 0 || len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// Errors returns the collected errors in input order
func (ec *ErrorCollection) Errors() []EntryError {
	return ec.errors
}

// Reasons returns the human-readable rejection reasons in input order
func (ec *ErrorCollection) Reasons() []string {
	reasons := make([]string, len(ec.errors))
	for i, err := range ec.errors {
		reasons[i] = err.Error()
	}
	return reasons
}

// Count returns the number of collected errors (up to the limit)
func (ec *ErrorCollection) Count() int {
	return len(ec.errors)
}

// TotalCount returns the total number of rejections including any not collected
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors returns true if there are any rejections
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated returns true if some rejections were not collected due to the limit
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.maxErrors > 0 && ec.totalCount > ec.maxErrors
}

// String returns a string representation of all rejections
func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no rejections"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d rejection(s)", ec.totalCount))
	if ec.IsTruncated() {
		sb.WriteString(fmt.Sprintf(" (showing first %d)", ec.maxErrors))
	}
	sb.WriteString(":\n")

	for _, err := range ec.errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}

	return sb.String()
}
