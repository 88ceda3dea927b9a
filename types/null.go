package types

var _ Value = NewNullValue()

type NullValue struct{}

// NewNullValue returns a null node.
func NewNullValue() NullValue {
	return NullValue{}
}

func (v NullValue) V() any {
	return nil
}

func (v NullValue) Type() Type {
	return TypeNull
}

func (v NullValue) String() string {
	return "null"
}

func (v NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
