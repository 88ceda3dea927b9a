package types

import (
	"math"
	"strconv"
)

var _ Value = NewDoubleValue(0)

type DoubleValue float64

// NewDoubleValue returns a double precision float node.
func NewDoubleValue(x float64) DoubleValue {
	return DoubleValue(x)
}

func (v DoubleValue) V() any {
	return float64(v)
}

func (v DoubleValue) Type() Type {
	return TypeDouble
}

func (v DoubleValue) String() string {
	d, _ := v.MarshalJSON()
	return string(d)
}

func (v DoubleValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 {
		if abs < 1e-6 || abs >= 1e15 {
			fmt = 'e'
		}
	}

	// By default the precision is -1 to use the smallest number of digits.
	// See https://pkg.go.dev/strconv#FormatFloat
	prec := -1
	// if the number is round, add .0 so the literal parses back as a double
	if fmt == 'f' && float64(int64(f)) == f {
		prec = 1
	}

	return strconv.AppendFloat(nil, f, fmt, prec, 64), nil
}
