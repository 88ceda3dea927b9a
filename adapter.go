package jsonbind

import (
	"math"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
	"github.com/jsonbind/jsonbind/types"
	"golang.org/x/exp/slices"
)

// decodeValue resolves the adapter for the target's concrete type and runs
// its decode against v. target is always a pointer. Precedence, highest
// first: scalar specializations, struct-like (Bindable), closed sums
// (Variant), composite capabilities (exactly one per type), enums, backed
// types, then plain Go kinds through reflection.
func decodeValue(v types.Value, target any) error {
	switch t := target.(type) {
	case nil:
		return NewErrUnsupportedType(target, "binding target must be a non-nil pointer")
	case *types.Value:
		*t = v
		return nil
	case *bool:
		x, err := types.ToBool(v)
		if err != nil {
			return err
		}
		*t = x
		return nil
	case *int32:
		x, err := types.ToInt32(v)
		if err != nil {
			return err
		}
		*t = x
		return nil
	case *uint32:
		x, err := types.ToUint32(v)
		if err != nil {
			return err
		}
		*t = x
		return nil
	case *int64:
		x, err := types.ToInt64(v)
		if err != nil {
			return err
		}
		*t = x
		return nil
	case *uint64:
		x, err := types.ToUint64(v)
		if err != nil {
			return err
		}
		*t = x
		return nil
	case *int:
		x, err := types.ToInt64(v)
		if err != nil {
			return err
		}
		*t = int(x)
		return nil
	case *uint:
		x, err := types.ToUint64(v)
		if err != nil {
			return err
		}
		*t = uint(x)
		return nil
	case *float32:
		x, err := types.ToFloat32(v)
		if err != nil {
			return err
		}
		*t = x
		return nil
	case *float64:
		x, err := types.ToFloat64(v)
		if err != nil {
			return err
		}
		*t = x
		return nil
	case *string:
		x, err := types.ToString(v)
		if err != nil {
			return err
		}
		*t = x
		return nil
	case *time.Time:
		return decodeTime(v, t)
	}

	if b, ok := target.(Bindable); ok {
		obj, ok := v.(*types.Object)
		if !ok {
			return errors.Errorf("expected object, got %s", v.Type())
		}
		return decodeStruct(obj, b)
	}

	if vr, ok := target.(Variant); ok {
		return decodeVariant(v, vr)
	}

	if n := compositeCount(target); n > 1 {
		return errors.Wrapf(ErrAmbiguousShape, "%T", target)
	}
	switch t := target.(type) {
	case BitVector:
		return decodeBitVector(v, t)
	case Sequence:
		return decodeSequence(v, t)
	case Assoc:
		return decodeAssoc(v, t)
	case Nullable:
		return decodeNullable(v, t)
	}

	named, isNamed := target.(NamedEnum)
	bounded, isBounded := target.(BoundedEnum)
	if isNamed && isBounded {
		return NewErrUnsupportedType(target, "enum declares both a name table and an ordinal bound")
	}
	if isNamed {
		return decodeNamedEnum(v, target, named.EnumNames())
	}
	if isBounded {
		return decodeBoundedEnum(v, target, bounded.EnumMax())
	}

	if bk, ok := target.(Backed); ok {
		return decodeValue(v, bk.Backend())
	}

	return decodeReflect(v, reflect.ValueOf(target))
}

// encodeValue resolves the adapter for the target's concrete type and runs
// its encode, returning a fresh node. target may be a pointer or a value;
// values are copied so interface checks see the full method set.
func encodeValue(target any) (types.Value, error) {
	if target == nil {
		return types.NewNullValue(), nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		rv = p
		target = p.Interface()
	} else if rv.IsNil() {
		return types.NewNullValue(), nil
	}

	switch t := target.(type) {
	case *types.Value:
		if *t == nil {
			return types.NewNullValue(), nil
		}
		return *t, nil
	case *bool:
		return types.NewBooleanValue(*t), nil
	case *int32:
		return types.NewIntegerValue(int64(*t)), nil
	case *uint32:
		return types.NewIntegerValue(int64(*t)), nil
	case *int64:
		return types.NewIntegerValue(*t), nil
	case *uint64:
		return encodeUint64(*t), nil
	case *int:
		return types.NewIntegerValue(int64(*t)), nil
	case *uint:
		return encodeUint64(uint64(*t)), nil
	case *float32:
		return types.NewDoubleValue(float64(*t)), nil
	case *float64:
		return types.NewDoubleValue(*t), nil
	case *string:
		return types.NewTextValue(*t), nil
	case *time.Time:
		return types.NewTextValue(t.UTC().Format(time.RFC3339Nano)), nil
	}

	if b, ok := target.(Bindable); ok {
		return encodeStruct(b)
	}

	if vr, ok := target.(Variant); ok {
		return encodeVariant(vr)
	}

	if n := compositeCount(target); n > 1 {
		return nil, errors.Wrapf(ErrAmbiguousShape, "%T", target)
	}
	switch t := target.(type) {
	case BitVector:
		return encodeBitVector(t), nil
	case Sequence:
		return encodeSequence(t)
	case Assoc:
		return encodeAssoc(t)
	case Nullable:
		return encodeNullable(t)
	}

	named, isNamed := target.(NamedEnum)
	_, isBounded := target.(BoundedEnum)
	if isNamed && isBounded {
		return nil, NewErrUnsupportedType(target, "enum declares both a name table and an ordinal bound")
	}
	if isNamed {
		return encodeNamedEnum(rv.Elem(), named.EnumNames())
	}
	if isBounded {
		return encodeOrdinal(rv.Elem())
	}

	if bk, ok := target.(Backed); ok {
		return encodeValue(bk.Backend())
	}

	return encodeReflect(rv)
}

// encodeUint64 keeps the numeric kind stable across a round trip: values
// that fit in an int64 parse back as signed integers.
func encodeUint64(x uint64) types.Value {
	if x > math.MaxInt64 {
		return types.NewUnsignedValue(x)
	}
	return types.NewIntegerValue(int64(x))
}

// compositeCount counts the composite capabilities the target declares. More
// than one is a configuration error.
func compositeCount(target any) int {
	var n int
	if _, ok := target.(BitVector); ok {
		n++
	}
	if _, ok := target.(Sequence); ok {
		n++
	}
	if _, ok := target.(Assoc); ok {
		n++
	}
	if _, ok := target.(Nullable); ok {
		n++
	}
	return n
}

func decodeStruct(obj *types.Object, target Bindable) error {
	r := reader{obj: obj}
	target.Bind(&r)
	return r.err
}

func encodeStruct(target Bindable) (types.Value, error) {
	w := writer{obj: types.NewObject()}
	target.Bind(&w)
	if w.err != nil {
		return nil, w.err
	}
	return w.obj, nil
}

func decodeTime(v types.Value, t *time.Time) error {
	s, err := types.ToString(v)
	if err != nil {
		return err
	}

	c := carbon.Parse(s, "UTC")
	if c.Error != nil {
		return errors.Wrapf(c.Error, "invalid timestamp %q", s)
	}

	*t = c.ToStdTime()
	return nil
}

func decodeSequence(v types.Value, seq Sequence) error {
	arr, ok := v.(*types.Array)
	if !ok {
		return errors.Errorf("expected array, got %s", v.Type())
	}

	if err := seq.Resize(arr.Len()); err != nil {
		return err
	}

	return arr.Iterate(func(i int, ev types.Value) error {
		return decodeValue(ev, seq.At(i))
	})
}

func encodeSequence(seq Sequence) (types.Value, error) {
	arr := types.NewArray()
	for i := 0; i < seq.Len(); i++ {
		v, err := encodeValue(seq.At(i))
		if err != nil {
			return nil, err
		}
		arr.Append(v)
	}

	return arr, nil
}

func decodeAssoc(v types.Value, m Assoc) error {
	obj, ok := v.(*types.Object)
	if !ok {
		return errors.Errorf("expected object, got %s", v.Type())
	}

	m.Clear()
	return obj.Iterate(func(name string, mv types.Value) error {
		kp, vp := m.NewEntry()
		if err := decodeValue(types.NewTextValue(name), kp); err != nil {
			return err
		}
		if err := decodeValue(mv, vp); err != nil {
			return err
		}

		// first occurrence of a duplicate key wins
		m.Put(kp, vp)
		return nil
	})
}

func encodeAssoc(m Assoc) (types.Value, error) {
	obj := types.NewObject()
	err := m.Entries(func(k, v any) error {
		kv, err := encodeValue(k)
		if err != nil {
			return err
		}
		name, err := types.ToString(kv)
		if err != nil {
			return errors.Errorf("map key must encode as text, got %s", kv.Type())
		}

		vv, err := encodeValue(v)
		if err != nil {
			return err
		}

		obj.Add(name, vv)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return obj, nil
}

func decodeNullable(v types.Value, n Nullable) error {
	if types.IsNull(v) {
		n.Clear()
		return nil
	}

	return decodeValue(v, n.Ref())
}

func encodeNullable(n Nullable) (types.Value, error) {
	if !n.Present() {
		return types.NewNullValue(), nil
	}

	return encodeValue(n.Ref())
}

// decodeReflect handles plain Go kinds: pointers behave like nullables,
// slices like resizable sequences, arrays like fixed storage, maps like
// assocs, and named scalar kinds like their underlying wire kind.
func decodeReflect(v types.Value, rv reflect.Value) error {
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return NewErrUnsupportedType(rv.Interface(), "binding target must be a non-nil pointer")
	}
	elem := rv.Elem()

	switch elem.Kind() {
	case reflect.Ptr:
		if types.IsNull(v) {
			elem.Set(reflect.Zero(elem.Type()))
			return nil
		}
		if elem.IsNil() {
			elem.Set(reflect.New(elem.Type().Elem()))
		}
		return decodeValue(v, elem.Interface())

	case reflect.Slice:
		arr, ok := v.(*types.Array)
		if !ok {
			return errors.Errorf("expected array, got %s", v.Type())
		}
		n := arr.Len()
		s := reflect.MakeSlice(elem.Type(), n, n)
		err := arr.Iterate(func(i int, ev types.Value) error {
			return decodeValue(ev, s.Index(i).Addr().Interface())
		})
		if err != nil {
			return err
		}
		elem.Set(s)
		return nil

	case reflect.Array:
		arr, ok := v.(*types.Array)
		if !ok {
			return errors.Errorf("expected array, got %s", v.Type())
		}
		if arr.Len() > elem.Len() {
			return NewCapacityError(arr.Len(), elem.Len())
		}
		// reset unused backing slots before the positional decode
		elem.Set(reflect.Zero(elem.Type()))
		return arr.Iterate(func(i int, ev types.Value) error {
			return decodeValue(ev, elem.Index(i).Addr().Interface())
		})

	case reflect.Map:
		obj, ok := v.(*types.Object)
		if !ok {
			return errors.Errorf("expected object, got %s", v.Type())
		}
		elem.Set(reflect.MakeMapWithSize(elem.Type(), obj.Len()))
		return obj.Iterate(func(name string, mv types.Value) error {
			kp := reflect.New(elem.Type().Key())
			if err := decodeValue(types.NewTextValue(name), kp.Interface()); err != nil {
				return err
			}
			if elem.MapIndex(kp.Elem()).IsValid() {
				// first occurrence of a duplicate key wins
				return nil
			}

			vp := reflect.New(elem.Type().Elem())
			if err := decodeValue(mv, vp.Interface()); err != nil {
				return err
			}

			elem.SetMapIndex(kp.Elem(), vp.Elem())
			return nil
		})

	case reflect.Bool:
		x, err := types.ToBool(v)
		if err != nil {
			return err
		}
		elem.SetBool(x)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x, err := types.ToInt64(v)
		if err != nil {
			return err
		}
		if elem.OverflowInt(x) {
			return errors.Errorf("integer %d out of range for %s", x, elem.Type())
		}
		elem.SetInt(x)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		x, err := types.ToUint64(v)
		if err != nil {
			return err
		}
		if elem.OverflowUint(x) {
			return errors.Errorf("integer %d out of range for %s", x, elem.Type())
		}
		elem.SetUint(x)
		return nil

	case reflect.Float32, reflect.Float64:
		x, err := types.ToFloat64(v)
		if err != nil {
			return err
		}
		elem.SetFloat(x)
		return nil

	case reflect.String:
		x, err := types.ToString(v)
		if err != nil {
			return err
		}
		elem.SetString(x)
		return nil
	}

	return NewErrUnsupportedType(elem.Interface(), "no adapter for this type")
}

func encodeReflect(rv reflect.Value) (types.Value, error) {
	elem := rv.Elem()

	switch elem.Kind() {
	case reflect.Ptr:
		if elem.IsNil() {
			return types.NewNullValue(), nil
		}
		return encodeValue(elem.Interface())

	case reflect.Slice, reflect.Array:
		arr := types.NewArray()
		for i := 0; i < elem.Len(); i++ {
			v, err := encodeValue(elem.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil

	case reflect.Map:
		members := make([]types.Member, 0, elem.Len())
		iter := elem.MapRange()
		for iter.Next() {
			kv, err := encodeValue(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			name, err := types.ToString(kv)
			if err != nil {
				return nil, errors.Errorf("map key must encode as text, got %s", kv.Type())
			}

			vv, err := encodeValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}

			members = append(members, types.Member{Name: name, Value: vv})
		}

		// Go map iteration order is unspecified: sort by member name so the
		// output is deterministic.
		slices.SortFunc(members, func(a, b types.Member) int {
			switch {
			case a.Name < b.Name:
				return -1
			case a.Name > b.Name:
				return 1
			}
			return 0
		})

		obj := types.NewObject()
		for _, m := range members {
			obj.Add(m.Name, m.Value)
		}
		return obj, nil

	case reflect.Bool:
		return types.NewBooleanValue(elem.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return types.NewIntegerValue(elem.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return encodeUint64(elem.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return types.NewDoubleValue(elem.Float()), nil

	case reflect.String:
		return types.NewTextValue(elem.String()), nil
	}

	return nil, NewErrUnsupportedType(elem.Interface(), "no adapter for this type")
}
