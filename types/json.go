package types

import (
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// SyntaxError is returned when the input text is not well-formed JSON. It
// carries the byte offset where the tokenizer gave up, when known.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("syntax error at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("syntax error: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func newSyntaxError(offset int, err error) error {
	return errors.WithStack(&SyntaxError{Offset: offset, Err: err})
}

// Parse reads a whole JSON document into a tree. Any JSON value is a valid
// document root.
func Parse(data []byte) (Value, error) {
	raw, dt, offset, err := jsonparser.Get(data)
	if err != nil {
		return nil, newSyntaxError(offset, err)
	}

	v, err := parseJSONValue(dt, raw)
	if err != nil {
		if se := (*SyntaxError)(nil); errors.As(err, &se) {
			return nil, err
		}
		return nil, newSyntaxError(-1, err)
	}

	return v, nil
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (v Value, err error) {
	switch dataType {
	case jsonparser.Null:
		return NewNullValue(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return NewBooleanValue(b), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err == nil {
			return NewIntegerValue(i), nil
		}

		// too big for an int64: an unsigned integer, or a floating point number
		u, uerr := strconv.ParseUint(string(data), 10, 64)
		if uerr == nil {
			return NewUnsignedValue(u), nil
		}

		f, ferr := jsonparser.ParseFloat(data)
		if ferr != nil {
			return nil, ferr
		}
		return NewDoubleValue(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return NewTextValue(s), nil
	case jsonparser.Array:
		arr := NewArray()
		if err := parseArray(arr, data); err != nil {
			return nil, err
		}
		return arr, nil
	case jsonparser.Object:
		obj := NewObject()
		if err := parseObject(obj, data); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, errors.Errorf("unsupported JSON type: %v", dataType)
	}
}

func parseArray(arr *Array, data []byte) error {
	var inner error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if inner != nil {
			return
		}
		if err != nil {
			inner = newSyntaxError(offset, err)
			return
		}

		v, err := parseJSONValue(dataType, value)
		if err != nil {
			inner = err
			return
		}

		arr.Append(v)
	})
	if err != nil {
		return newSyntaxError(-1, err)
	}

	return inner
}

func parseObject(obj *Object, data []byte) error {
	return jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, offset int) error {
		v, err := parseJSONValue(dataType, value)
		if err != nil {
			return err
		}

		obj.Add(string(key), v)
		return nil
	})
}
