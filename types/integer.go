package types

import "strconv"

var _ Value = NewIntegerValue(0)

// IntegerValue holds any integer literal that fits in an int64.
type IntegerValue int64

// NewIntegerValue returns a signed integer node.
func NewIntegerValue(x int64) IntegerValue {
	return IntegerValue(x)
}

func (v IntegerValue) V() any {
	return int64(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v IntegerValue) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(v), 10), nil
}
