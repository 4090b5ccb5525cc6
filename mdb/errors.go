package mdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrLengthMismatch indicates a blob's byte length disagrees with the
	// length declared by the format.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrBadIdentifier indicates the header identifier is not "GF/DMmdb".
	ErrBadIdentifier = errors.New("bad header identifier")

	// ErrUnknownVersion indicates a schema lookup for an unregistered format version.
	ErrUnknownVersion = errors.New("unknown format version")

	// ErrSchemaCoverage indicates a registered schema does not exactly tile
	// its record stride. This is a schema definition bug, not a runtime
	// condition; it is surfaced at registry load.
	ErrSchemaCoverage = errors.New("schema coverage violation")

	// ErrFieldOverflow indicates an edited value no longer fits its fixed byte span.
	ErrFieldOverflow = errors.New("field overflow")

	// ErrMissingField indicates a field required by the schema is absent from
	// the structured input.
	ErrMissingField = errors.New("missing field")

	// ErrTypeMismatch indicates a structured input value is not type-compatible
	// with its field descriptor.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrInvalidKey indicates a cipher key table has invalid size.
	ErrInvalidKey = errors.New("invalid key")
)

// LengthError reports a disagreement between an expected and an actual byte
// count or record count. It wraps ErrLengthMismatch.
type LengthError struct {
	Detail   string // What was being measured (e.g., "blob", "songs")
	Expected int
	Got      int
}

func (e *LengthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: expected %d, got %d", ErrLengthMismatch.Error(), e.Detail, e.Expected, e.Got)
	}
	return fmt.Sprintf("%s: expected %d, got %d", ErrLengthMismatch.Error(), e.Expected, e.Got)
}

func (e *LengthError) Unwrap() error {
	return ErrLengthMismatch
}

// SchemaError reports a schema definition problem found while building a
// record schema. It wraps a sentinel error (usually ErrSchemaCoverage).
type SchemaError struct {
	Err    error  // Underlying sentinel error
	Schema string // Record type name
	Field  string // Field that triggered the error, if any
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: schema %s field %s: %s", e.Err.Error(), e.Schema, e.Field, e.Detail)
	}
	return fmt.Sprintf("%s: schema %s: %s", e.Err.Error(), e.Schema, e.Detail)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// FieldError reports a per-field failure with enough context to locate the
// offending record and field. It wraps a sentinel error (ErrFieldOverflow,
// ErrMissingField, or ErrTypeMismatch).
type FieldError struct {
	Err     error  // Underlying sentinel error
	Section string // "header", "songs", or "courses"
	Record  int    // Record index within the section (-1 for header)
	Field   string // Dotted field path (e.g., "difficulty.guitar.beginner")
	Detail  string
}

func (e *FieldError) Error() string {
	loc := e.Section
	if e.Record >= 0 {
		loc = fmt.Sprintf("%s[%d]", e.Section, e.Record)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s field %s: %s", e.Err.Error(), loc, e.Field, e.Detail)
	}
	return fmt.Sprintf("%s: %s field %s", e.Err.Error(), loc, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// newLengthError creates a LengthError.
func newLengthError(detail string, expected, got int) error {
	return &LengthError{Detail: detail, Expected: expected, Got: got}
}

// newSchemaError creates a SchemaError.
func newSchemaError(sentinel error, schema, field, detail string) error {
	return &SchemaError{Err: sentinel, Schema: schema, Field: field, Detail: detail}
}

// newFieldError creates a FieldError.
func newFieldError(sentinel error, section string, record int, field, detail string) error {
	return &FieldError{Err: sentinel, Section: section, Record: record, Field: field, Detail: detail}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{Err: sentinel, Cause: cause}
}
