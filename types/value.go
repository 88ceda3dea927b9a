package types

import (
	"math"

	"github.com/cockroachdb/errors"
)

// The To* conversions are the only coercions the tree itself performs. They
// check the node kind strictly: an integer literal can be read through any
// integer conversion whose range admits it, but never as a double, and a
// double literal is never read as an integer.

func ToBool(v Value) (bool, error) {
	bv, ok := v.(BooleanValue)
	if !ok {
		return false, errors.Errorf("expected boolean, got %s", v.Type())
	}

	return bool(bv), nil
}

func ToInt64(v Value) (int64, error) {
	iv, ok := v.(IntegerValue)
	if !ok {
		return 0, errors.Errorf("expected integer, got %s", v.Type())
	}

	return int64(iv), nil
}

func ToInt32(v Value) (int32, error) {
	x, err := ToInt64(v)
	if err != nil {
		return 0, err
	}
	if x < math.MinInt32 || x > math.MaxInt32 {
		return 0, errors.Errorf("integer %d out of range for int32", x)
	}

	return int32(x), nil
}

func ToUint64(v Value) (uint64, error) {
	switch x := v.(type) {
	case IntegerValue:
		if x < 0 {
			return 0, errors.Errorf("integer %d out of range for uint64", int64(x))
		}
		return uint64(x), nil
	case UnsignedValue:
		return uint64(x), nil
	}

	return 0, errors.Errorf("expected integer, got %s", v.Type())
}

func ToUint32(v Value) (uint32, error) {
	x, err := ToUint64(v)
	if err != nil {
		return 0, err
	}
	if x > math.MaxUint32 {
		return 0, errors.Errorf("integer %d out of range for uint32", x)
	}

	return uint32(x), nil
}

func ToFloat64(v Value) (float64, error) {
	dv, ok := v.(DoubleValue)
	if !ok {
		return 0, errors.Errorf("expected double, got %s", v.Type())
	}

	return float64(dv), nil
}

func ToFloat32(v Value) (float32, error) {
	x, err := ToFloat64(v)
	if err != nil {
		return 0, err
	}

	return float32(x), nil
}

func ToString(v Value) (string, error) {
	tv, ok := v.(TextValue)
	if !ok {
		return "", errors.Errorf("expected text, got %s", v.Type())
	}

	return string(tv), nil
}

// IsNull reports whether v is the null node.
func IsNull(v Value) bool {
	return v == nil || v.Type() == TypeNull
}
