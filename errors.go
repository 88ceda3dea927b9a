package jsonbind

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/jsonbind/jsonbind/types"
)

// SyntaxError is reported by the tree engine when the input text is
// malformed. Re-exported so callers only need this package.
type SyntaxError = types.SyntaxError

// ErrAmbiguousShape is returned when a type implements more than one
// composite capability (Sequence, Assoc, BitVector, Nullable) at once.
// Exactly one category must be declared per type.
var ErrAmbiguousShape = errors.New("type implements more than one composite capability")

// ErrUnsupportedType is returned when no adapter exists for a target type.
type ErrUnsupportedType struct {
	Value any
	Msg   string
}

func NewErrUnsupportedType(value any, msg string) error {
	return errors.WithStack(&ErrUnsupportedType{
		Value: value,
		Msg:   msg,
	})
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported type %T. %s", e.Value, e.Msg)
}

// MissingFieldError is returned when a required field is absent from the
// source object.
type MissingFieldError struct {
	Field  string
	Struct string
}

func NewMissingFieldError(field, structName string) error {
	return errors.WithStack(&MissingFieldError{Field: field, Struct: structName})
}

func (e *MissingFieldError) Error() string {
	if e.Struct == "" {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("missing field %q in %s", e.Field, e.Struct)
}

// TypeMismatchError is returned when a field is present but its node is
// rejected by the field's adapter. It wraps the rejection cause.
type TypeMismatchError struct {
	Field  string
	Struct string
	Err    error
}

func NewTypeMismatchError(field, structName string, err error) error {
	return errors.WithStack(&TypeMismatchError{Field: field, Struct: structName, Err: err})
}

func (e *TypeMismatchError) Error() string {
	if e.Struct == "" {
		return fmt.Sprintf("cannot parse field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("cannot parse field %q in %s: %v", e.Field, e.Struct, e.Err)
}

func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}

// CapacityError is returned when a decoded array is longer than its
// fixed-capacity destination.
type CapacityError struct {
	Len int
	Cap int
}

func NewCapacityError(n, capacity int) error {
	return errors.WithStack(&CapacityError{Len: n, Cap: capacity})
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("array of length %d exceeds capacity %d", e.Len, e.Cap)
}

// UnknownEnumError is returned when a named enum decodes a label that is not
// in its name table.
type UnknownEnumError struct {
	Label string
	Type  string
}

func NewUnknownEnumError(label, typeName string) error {
	return errors.WithStack(&UnknownEnumError{Label: label, Type: typeName})
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("unknown label %q for enum %s", e.Label, e.Type)
}

// EnumRangeError is returned when an ordinal enum with a declared maximum
// decodes an integer outside [0, max).
type EnumRangeError struct {
	Value int64
	Max   int64
	Type  string
}

func NewEnumRangeError(value, max int64, typeName string) error {
	return errors.WithStack(&EnumRangeError{Value: value, Max: max, Type: typeName})
}

func (e *EnumRangeError) Error() string {
	return fmt.Sprintf("value %d out of range [0, %d) for enum %s", e.Value, e.Max, e.Type)
}
