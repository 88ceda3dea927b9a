package jsonbind

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/jsonbind/jsonbind/types"
)

// A NamedEnum travels as a string label. EnumNames lists the labels in
// ordinal order: position i names the value i. Decoding a label outside the
// table fails with an UnknownEnumError, and so does encoding a value outside
// [0, len).
type NamedEnum interface {
	EnumNames() []string
}

// A BoundedEnum travels as its ordinal with a range check: decoding a value
// outside [0, EnumMax) fails with an EnumRangeError.
type BoundedEnum interface {
	EnumMax() int64
}

// enumTable indexes an enum's labels by name. Built exactly once per enum
// type, shared by all goroutines afterwards.
type enumTable struct {
	once   sync.Once
	names  []string
	byName map[string]int64
}

var enumTables sync.Map // reflect.Type -> *enumTable

func enumTableFor(typ reflect.Type, names []string) *enumTable {
	ti, _ := enumTables.LoadOrStore(typ, &enumTable{})
	t := ti.(*enumTable)
	t.once.Do(func() {
		t.names = names
		t.byName = make(map[string]int64, len(names))
		for i, n := range names {
			t.byName[n] = int64(i)
		}
	})

	return t
}

func decodeNamedEnum(v types.Value, target any, names []string) error {
	s, err := types.ToString(v)
	if err != nil {
		return err
	}

	t := enumTableFor(reflect.TypeOf(target), names)
	ord, ok := t.byName[s]
	if !ok {
		return NewUnknownEnumError(s, fmt.Sprintf("%T", target))
	}

	return setOrdinal(target, ord)
}

func encodeNamedEnum(elem reflect.Value, names []string) (types.Value, error) {
	ord, err := ordinalOf(elem)
	if err != nil {
		return nil, err
	}

	t := enumTableFor(reflect.PtrTo(elem.Type()), names)
	if ord < 0 || ord >= int64(len(t.names)) {
		return nil, NewUnknownEnumError(fmt.Sprintf("#%d", ord), elem.Type().String())
	}

	return types.NewTextValue(t.names[ord]), nil
}

func decodeBoundedEnum(v types.Value, target any, max int64) error {
	ord, err := types.ToInt64(v)
	if err != nil {
		return err
	}

	if ord < 0 || ord >= max {
		return NewEnumRangeError(ord, max, fmt.Sprintf("%T", target))
	}

	return setOrdinal(target, ord)
}

// encodeOrdinal emits an enum value as its plain ordinal.
func encodeOrdinal(elem reflect.Value) (types.Value, error) {
	ord, err := ordinalOf(elem)
	if err != nil {
		return nil, err
	}

	return types.NewIntegerValue(ord), nil
}

// ordinalOf reads the underlying integer out of an enum value.
func ordinalOf(elem reflect.Value) (int64, error) {
	switch elem.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return elem.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := elem.Uint()
		if u > 1<<62 {
			return 0, errors.Errorf("enum ordinal %d too large", u)
		}
		return int64(u), nil
	default:
		return 0, NewErrUnsupportedType(elem.Interface(), "enum must have an integer underlying type")
	}
}

// setOrdinal stores ord into an enum target, a pointer to a named integer
// type.
func setOrdinal(target any, ord int64) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return NewErrUnsupportedType(target, "binding target must be a non-nil pointer")
	}
	elem := rv.Elem()

	switch elem.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if elem.OverflowInt(ord) {
			return errors.Errorf("enum ordinal %d out of range for %s", ord, elem.Type())
		}
		elem.SetInt(ord)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if ord < 0 || elem.OverflowUint(uint64(ord)) {
			return errors.Errorf("enum ordinal %d out of range for %s", ord, elem.Type())
		}
		elem.SetUint(uint64(ord))
	default:
		return NewErrUnsupportedType(target, "enum must have an integer underlying type")
	}

	return nil
}
