package jsonbind

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/jsonbind/jsonbind/types"
)

// A Binder sequences named field operations against one object node. The
// same Bind method drives both directions: the direction is a property of
// the binder passed in, not of separate code paths.
//
// Every target is a pointer to the field, in both directions. A typed nil
// pointer is silently skipped, which allows optional output-only binding
// sites.
//
// Binders are sticky: after the first failure, later operations are no-ops
// and the error surfaces when the enclosing adapter finishes.
type Binder interface {
	// Reading reports whether the binder populates targets from a tree.
	Reading() bool

	// Name tags the binder with the enclosing type's name for diagnostics.
	// It performs no I/O.
	Name(typeName string) Binder

	// Field binds a required field. On read, a missing member or a rejected
	// node fails the whole decode. On write, the field is always emitted.
	Field(name string, target any) Binder

	// Opt binds a field with a default. def may be a value assignable or
	// convertible to the target's type, or a zero-argument factory invoked
	// lazily. On read, absence assigns the default. On write, the field is
	// omitted when the value equals the default.
	Opt(name string, target any, def any) Binder
}

// Bindable is implemented by struct-like types: a single method that
// enumerates the type's fields against a Binder, in declaration order.
type Bindable interface {
	Bind(b Binder)
}

// BindFunc adapts a closure into a Bindable, for ad-hoc binding sites that
// have no named type.
type BindFunc func(b Binder)

func (f BindFunc) Bind(b Binder) { f(b) }

// reader binds fields from one object node.
type reader struct {
	obj      *types.Object
	typeName string
	err      error
}

var _ Binder = (*reader)(nil)

func (r *reader) Reading() bool { return true }

func (r *reader) Name(typeName string) Binder {
	r.typeName = typeName
	return r
}

func (r *reader) Field(name string, target any) Binder {
	if r.err != nil || isNilPointer(target) {
		return r
	}

	v, err := r.obj.Get(name)
	if err != nil {
		r.err = NewMissingFieldError(name, r.typeName)
		return r
	}

	if err := decodeValue(v, target); err != nil {
		r.err = r.fieldError(name, err)
	}
	return r
}

func (r *reader) Opt(name string, target any, def any) Binder {
	if r.err != nil || isNilPointer(target) {
		return r
	}

	v, err := r.obj.Get(name)
	if errors.Is(err, types.ErrFieldNotFound) {
		r.err = assignDefault(target, def)
		return r
	}
	if err != nil {
		r.err = err
		return r
	}

	// a present but malformed field is still an error
	if err := decodeValue(v, target); err != nil {
		r.err = r.fieldError(name, err)
	}
	return r
}

// fieldError attributes an adapter rejection to the field, unless the error
// already comes from a nested binder and carries its own attribution.
func (r *reader) fieldError(name string, err error) error {
	var mf *MissingFieldError
	var tm *TypeMismatchError
	if errors.As(err, &mf) || errors.As(err, &tm) {
		return err
	}

	return NewTypeMismatchError(name, r.typeName, err)
}

// writer builds one object node.
type writer struct {
	obj *types.Object
	err error
}

var _ Binder = (*writer)(nil)

func (w *writer) Reading() bool { return false }

func (w *writer) Name(string) Binder { return w }

func (w *writer) Field(name string, target any) Binder {
	if w.err != nil || isNilPointer(target) {
		return w
	}

	v, err := encodeValue(target)
	if err != nil {
		w.err = err
		return w
	}

	w.obj.Set(name, v)
	return w
}

func (w *writer) Opt(name string, target any, def any) Binder {
	if w.err != nil || isNilPointer(target) {
		return w
	}

	equal, err := equalsDefault(target, def)
	if err != nil {
		w.err = err
		return w
	}
	if equal {
		return w
	}

	return w.Field(name, target)
}

// initializer assigns declared defaults without a tree. Used by
// ApplyDefaults.
type initializer struct {
	err error
}

var _ Binder = (*initializer)(nil)

func (in *initializer) Reading() bool { return false }

func (in *initializer) Name(string) Binder { return in }

func (in *initializer) Field(name string, target any) Binder {
	if in.err != nil || isNilPointer(target) {
		return in
	}

	if b, ok := target.(Bindable); ok {
		b.Bind(in)
	}
	return in
}

func (in *initializer) Opt(name string, target any, def any) Binder {
	if in.err != nil || isNilPointer(target) {
		return in
	}

	in.err = assignDefault(target, def)
	return in
}

// isNilPointer reports whether target is nil or a typed nil pointer.
func isNilPointer(target any) bool {
	if target == nil {
		return true
	}

	rv := reflect.ValueOf(target)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// assignDefault stores def into the pointed-to target. def may be a value of
// the target's type, a value convertible to it, or a zero-argument factory.
func assignDefault(target any, def any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return NewErrUnsupportedType(target, "binding target must be a non-nil pointer")
	}
	elem := rv.Elem()

	dv, err := defaultValue(def, elem.Type())
	if err != nil {
		return err
	}

	elem.Set(dv)
	return nil
}

// equalsDefault reports whether the pointed-to value compares equal to the
// default. An Equal method on the value's type is honored when present,
// otherwise the comparison is structural.
func equalsDefault(target any, def any) (bool, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false, NewErrUnsupportedType(target, "binding target must be a non-nil pointer")
	}
	elem := rv.Elem()

	dv, err := defaultValue(def, elem.Type())
	if err != nil {
		return false, err
	}

	if m := elem.MethodByName("Equal"); m.IsValid() {
		mt := m.Type()
		if mt.NumIn() == 1 && mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool && dv.Type().AssignableTo(mt.In(0)) {
			return m.Call([]reflect.Value{dv})[0].Bool(), nil
		}
	}

	return reflect.DeepEqual(elem.Interface(), dv.Interface()), nil
}

// defaultValue resolves def against the target type: factories are invoked,
// then the result is converted when needed.
func defaultValue(def any, target reflect.Type) (reflect.Value, error) {
	if def == nil {
		return reflect.Zero(target), nil
	}

	dv := reflect.ValueOf(def)
	if dv.Kind() == reflect.Func {
		ft := dv.Type()
		if ft.NumIn() != 0 || ft.NumOut() != 1 {
			return reflect.Value{}, NewErrUnsupportedType(def, "default factory must take no argument and return one value")
		}
		dv = dv.Call(nil)[0]
		if dv.Kind() == reflect.Interface {
			dv = dv.Elem()
		}
	}

	if dv.Type() == target || dv.Type().AssignableTo(target) {
		return dv, nil
	}
	if dv.Type().ConvertibleTo(target) {
		return dv.Convert(target), nil
	}

	return reflect.Value{}, NewErrUnsupportedType(def, "default value is not assignable to the field type")
}
