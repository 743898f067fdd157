package normalizer

import "fmt"

// SchemaError means a required semantic column could not be resolved from any
// known label alias after normalization.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: required column %q not found under any known label", e.Field)
}

// TypeConversionError means a cell failed numeric coercion. Row is the
// zero-based data-row index so callers can point at the offending record.
type TypeConversionError struct {
	Row   int
	Field string
	Value string
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("row %d: field %q: cannot convert %q to a non-negative number", e.Row, e.Field, e.Value)
}
