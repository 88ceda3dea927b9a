// Package jsonbind converts between JSON text and Go values through
// type-directed adapters.
//
// A struct-like type opts in by implementing Bindable: a single Bind method
// that enumerates its fields against a Binder, and the same method drives
// both decoding and encoding. Sequences, maps, nullables, sum types, enums
// and bit vectors get their wire forms from small capability interfaces, and
// plain Go kinds work out of the box through reflection.
package jsonbind

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/jsonbind/jsonbind/types"
	"github.com/tidwall/jsonc"
)

// Backed delegates a type's wire form to another value, typically a field of
// the receiver. The backend goes through adapter resolution like any other
// target.
type Backed interface {
	// Backend returns a pointer to the value that carries the wire form.
	Backend() any
}

type config struct {
	allowComments bool
}

// An Option adjusts how input text is read.
type Option func(*config)

// AllowComments accepts // and /* */ comments and trailing commas in the
// input, stripping them before parsing. Output is always plain JSON.
func AllowComments() Option {
	return func(c *config) {
		c.allowComments = true
	}
}

// Decode parses data and populates target, which must be a non-nil pointer.
// The target's previous content is overwritten field by field; fields the
// input does not mention keep their values unless bound with Opt.
func Decode(data []byte, target any, opts ...Option) error {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.allowComments {
		data = jsonc.ToJSON(data)
	}

	v, err := types.Parse(data)
	if err != nil {
		return err
	}

	return decodeValue(v, target)
}

// Unmarshal parses data into a fresh T.
func Unmarshal[T any](data []byte, opts ...Option) (T, error) {
	var t T
	err := Decode(data, &t, opts...)
	return t, err
}

// DecodeFrom reads r to the end and decodes into target.
func DecodeFrom(r io.Reader, target any, opts ...Option) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WithStack(err)
	}

	return Decode(data, target, opts...)
}

// Marshal encodes v as compact JSON.
func Marshal(v any) ([]byte, error) {
	tv, err := encodeValue(v)
	if err != nil {
		return nil, err
	}

	return tv.MarshalJSON()
}

// MarshalTo encodes v and writes the result to w.
func MarshalTo(w io.Writer, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return errors.WithStack(err)
}

// ApplyDefaults walks v's binding and assigns every Opt field its declared
// default, recursing into required Bindable fields. Useful to bring a zero
// value to the same state a decode of "{}" would produce.
func ApplyDefaults(v Bindable) error {
	var in initializer
	v.Bind(&in)
	return in.err
}

// AsJSON wraps v for deferred encoding, typically as a log or Printf
// argument. Encoding errors render inline.
func AsJSON(v any) asJSON {
	return asJSON{v: v}
}

type asJSON struct {
	v any
}

func (a asJSON) String() string {
	data, err := Marshal(a.v)
	if err != nil {
		return "!ERROR: " + err.Error()
	}
	return string(data)
}
