package types

import "bytes"

var _ Value = NewArray()

// An Array is an ordered sequence of nodes. It is itself a node.
type Array struct {
	values []Value
}

// NewArray creates an empty array node.
func NewArray(values ...Value) *Array {
	return &Array{values: values}
}

// Append adds v at the end of the array.
func (a *Array) Append(v Value) *Array {
	a.values = append(a.values, v)
	return a
}

// GetByIndex returns the value at index i. Returns ErrValueNotFound if i is
// out of range.
func (a *Array) GetByIndex(i int) (Value, error) {
	if i < 0 || i >= len(a.values) {
		return nil, ErrValueNotFound
	}

	return a.values[i], nil
}

// Iterate goes through all the values of the array in order and calls the
// given function with each one of them. If the given function returns an
// error, the iteration stops.
func (a *Array) Iterate(fn func(i int, value Value) error) error {
	for i, v := range a.values {
		err := fn(i, v)
		if err != nil {
			return err
		}
	}

	return nil
}

// Len of the array.
func (a *Array) Len() int {
	return len(a.values)
}

func (a *Array) V() any {
	return a.values
}

func (a *Array) Type() Type {
	return TypeArray
}

func (a *Array) String() string {
	d, _ := a.MarshalJSON()
	return string(d)
}

func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')
	for i, v := range a.values {
		if i > 0 {
			buf.WriteByte(',')
		}

		data, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}
