package datajanitor

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes attached to column violations.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeMissingValues = "missing_values"
	CodeOutOfRange    = "out_of_range"
)

// Sentinel errors returned (wrapped) by the cleaning transforms.
var (
	ErrUnsupportedMethod   = errors.New("datajanitor: unsupported method")
	ErrUnknownColumn       = errors.New("datajanitor: unknown column")
	ErrNonNumericColumn    = errors.New("datajanitor: column is not numeric")
	ErrInvalidMultiplier   = errors.New("datajanitor: multiplier must be positive")
	ErrEmptyColumnName     = errors.New("datajanitor: column name is empty after cleaning")
	ErrDuplicateColumnName = errors.New("datajanitor: duplicate column name after cleaning")
	ErrColumnLength        = errors.New("datajanitor: column lengths differ")
)

// TypeInputError reports an argument of the wrong kind (a non-dataset value
// or a schema that is not a mapping). No column is examined when it occurs.
type TypeInputError struct {
	Message string
}

func (e *TypeInputError) Error() string { return e.Message }

func errDataNotTabular() error { return &TypeInputError{Message: "Input data must be a tabular dataset"} }

func errSchemaNotMapping() error { return &TypeInputError{Message: "Schema must be a mapping"} }

// Issue is a single column violation.
type Issue struct {
	Column  string
	Code    string // One of the Code* constants.
	Message string
	// Params carries the structured values used to render Message
	// (e.g. {"min": 5, "max": 100}).
	Params map[string]any
}

// SchemaValidationError carries every column violation found by Validate.
// Errors maps column name to message; Issues keeps the same violations in
// schema order with their codes.
type SchemaValidationError struct {
	Errors map[string]string
	Issues []Issue
}

// Error summarizes the first few violations.
func (e *SchemaValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "schema validation failed"
	}
	const maxShown = 3
	b := &strings.Builder{}
	b.WriteString("schema validation failed: ")
	n := len(e.Issues)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := e.Issues[i]
		// e.g. missing_values at age
		fmt.Fprintf(b, "%s at %s", it.Code, it.Column)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

func (e *SchemaValidationError) add(is Issue) {
	if e.Errors == nil {
		e.Errors = map[string]string{}
	}
	e.Errors[is.Column] = is.Message
	e.Issues = append(e.Issues, is)
}

// AsSchemaValidationError extracts a SchemaValidationError using errors.As.
func AsSchemaValidationError(err error) (*SchemaValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var sve *SchemaValidationError
	if errors.As(err, &sve) {
		return sve, true
	}
	return nil, false
}

// AsTypeInputError extracts a TypeInputError using errors.As.
func AsTypeInputError(err error) (*TypeInputError, bool) {
	if err == nil {
		return nil, false
	}
	var tie *TypeInputError
	if errors.As(err, &tie) {
		return tie, true
	}
	return nil, false
}
