package extract

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidYAML        = errors.New("invalid YAML syntax")
	ErrNoServices         = errors.New("no services section found")
	ErrServicesNotMapping = errors.New("services section is not a mapping")

	ErrInvalidPort   = errors.New("invalid port")
	ErrInvalidVolume = errors.New("invalid volume")

	ErrNotCompliant = errors.New("document rejected by the compose reference loader")
)

// StructuralError reports a document that cannot be turned into a model at
// all. It always aborts extraction.
type StructuralError struct {
	Err error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error: %v", e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// FieldParseError reports an optional field whose raw value violates its
// grammar, e.g. a port string with too many colons. Fields that are merely
// absent or of an unexpected type fall back to defaults instead.
type FieldParseError struct {
	Field string // e.g. "services.web.ports[0]"
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, e.Value)
}

func (e *FieldParseError) Unwrap() error {
	return e.Err
}

func fieldError(field, value string, err error) *FieldParseError {
	return &FieldParseError{Field: field, Value: value, Err: err}
}
