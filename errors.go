package record

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidSchema indicates a schema declaration is malformed.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidType indicates a type expression could not be parsed.
	ErrInvalidType = errors.New("invalid type")

	// ErrUnknownField indicates a value was given for a field the schema does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrNoHandler indicates no override or built-in handler exists for a field's type.
	// It aborts the enclosing record.
	ErrNoHandler = errors.New("no handler")

	// ErrMalformedContainer indicates the input is not a mapping or a list of mappings.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrEncode indicates the format writer rejected an encoded record.
	ErrEncode = errors.New("encode failed")

	// ErrTypeMismatch indicates a raw value had the wrong primitive kind.
	// Handlers may return it to have the failure reported as a TypeMismatch warning.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrAborted indicates interactive record construction was abandoned.
	ErrAborted = errors.New("construction aborted")

	// ErrUnmarshal indicates the format failed to parse input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the format failed to write output data.
	ErrMarshal = errors.New("marshal failed")
)

// HandlerError reports that a field's handler could not be resolved.
// It wraps ErrNoHandler with the record, field, and type involved.
type HandlerError struct {
	Err    error       // Underlying sentinel error (ErrNoHandler)
	Kind   HandlerKind // Which handler was being resolved
	Record string      // Record kind containing the field
	Field  string      // Field name
	Type   TypeID      // Declared type that had no handler
}

func (e *HandlerError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s for type %q (%s field %s.%s)", e.Err.Error(), e.Type, e.Kind, e.Record, e.Field)
	}
	return fmt.Sprintf("%s for type %q (%s)", e.Err.Error(), e.Type, e.Kind)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// RecordError reports a fatal failure of one record within a sequence.
// Sibling records are unaffected.
type RecordError struct {
	Err   error // Underlying sentinel error (ErrNoHandler, ErrMalformedContainer, ErrEncode)
	Index int   // Position of the record in the sequence
	Cause error // Original error
}

func (e *RecordError) Error() string {
	if e.Cause != nil && e.Cause != e.Err {
		return fmt.Sprintf("record %d: %v", e.Index, e.Cause)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Err.Error())
}

func (e *RecordError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// CodecError represents a format marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the format
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newHandlerError creates a HandlerError for unresolved handler scenarios.
func newHandlerError(kind HandlerKind, record, field string, t *Type) error {
	return &HandlerError{
		Err:    ErrNoHandler,
		Kind:   kind,
		Record: record,
		Field:  field,
		Type:   t.ID(),
	}
}

// newRecordError creates a RecordError for a failed record in a sequence.
func newRecordError(sentinel error, index int, cause error) *RecordError {
	return &RecordError{
		Err:   sentinel,
		Index: index,
		Cause: cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
