package types

import "strconv"

var _ Value = NewUnsignedValue(0)

// UnsignedValue holds integer literals too large for an int64. Smaller
// unsigned quantities are stored as IntegerValue so that a value keeps the
// same kind across an encode/parse round trip.
type UnsignedValue uint64

// NewUnsignedValue returns an unsigned integer node.
func NewUnsignedValue(x uint64) UnsignedValue {
	return UnsignedValue(x)
}

func (v UnsignedValue) V() any {
	return uint64(v)
}

func (v UnsignedValue) Type() Type {
	return TypeUnsigned
}

func (v UnsignedValue) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

func (v UnsignedValue) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(v), 10), nil
}
