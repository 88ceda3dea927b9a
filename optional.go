package jsonbind

// A Nullable is the capability implemented by zero-or-one containers. The
// wire form is null when absent, otherwise the wrapped type's own encoding.
// Unique, shared and raw-pointer ownership are wire-identical; plain Go
// pointers get the same semantics without implementing this interface.
//
// A type must not implement Nullable together with another composite
// capability.
type Nullable interface {
	// Present reports whether a value is held.
	Present() bool

	// Clear discards the held value.
	Clear()

	// Ref returns a pointer to the wrapped value, materializing a zero
	// value first if none is held.
	Ref() any
}

// Optional holds zero or one T in place, without allocation.
type Optional[T any] struct {
	value T
	ok    bool
}

var _ Nullable = (*Optional[int])(nil)

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and whether one is held.
func (o *Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Set stores v.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.ok = true
}

func (o *Optional[T]) Present() bool {
	return o.ok
}

func (o *Optional[T]) Clear() {
	var zero T
	o.value = zero
	o.ok = false
}

func (o *Optional[T]) Ref() any {
	o.ok = true
	return &o.value
}
