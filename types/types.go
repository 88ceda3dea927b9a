// Package types defines the generic value tree the codec reads from and
// writes to: a tagged node union covering null, booleans, numbers, strings,
// ordered arrays and ordered objects, plus strict conversions between nodes
// and Go scalar kinds and JSON text (de)serialization.
package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrFieldNotFound must be returned by Object implementations, when
	// calling the Get method and the member doesn't exist.
	ErrFieldNotFound = errors.New("field not found")

	// ErrValueNotFound must be returned by Array implementations, when
	// calling the GetByIndex method and the index is out of range.
	ErrValueNotFound = errors.New("value not found")
)

// Type represents a node kind supported by the value tree.
type Type uint8

// List of supported node kinds.
const (
	// TypeAny denotes the absence of type
	TypeAny Type = iota
	TypeNull
	TypeBoolean
	TypeInteger
	TypeUnsigned
	TypeDouble
	TypeText
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeUnsigned:
		return "unsigned"
	case TypeDouble:
		return "double"
	case TypeText:
		return "text"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// IsNumber returns true if t is an integer or a float kind.
func (t Type) IsNumber() bool {
	return t == TypeInteger || t == TypeUnsigned || t == TypeDouble
}

// IsInteger returns true if t is an integer kind, signed or not.
func (t Type) IsInteger() bool {
	return t == TypeInteger || t == TypeUnsigned
}

// IsAny returns whether this type is Any or a real type.
func (t Type) IsAny() bool {
	return t == TypeAny
}

// A Value is one node of the tree. Nodes are owned by the call that builds
// them and are never shared across calls.
type Value interface {
	Type() Type
	V() any
	String() string
	MarshalJSON() ([]byte, error)
}
