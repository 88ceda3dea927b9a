package jsonbind

// A Sequence is the capability implemented by sequence-like containers. The
// wire form is an array: decode resizes the sequence to the incoming length
// and fills elements positionally, encode emits exactly Len elements in
// order.
//
// A type must not implement Sequence together with another composite
// capability.
type Sequence interface {
	// Len returns the logical length.
	Len() int

	// Resize sets the logical length to n, clearing previous content.
	// Fixed-capacity implementations fail with a CapacityError when n
	// exceeds their capacity.
	Resize(n int) error

	// At returns a pointer to the i-th element, 0 <= i < Len.
	At(i int) any
}

// FixedSlice is a sequence view over caller-owned backing storage of fixed
// capacity plus a logical size. Decoding an array longer than the capacity
// fails; decoding a shorter one resets the unused backing slots to the zero
// element.
//
// The view is built at the binding site, wrapping storage that outlives it:
//
//	type reading struct {
//		samples  [16]float64
//		nsamples int
//	}
//
//	func (r *reading) Bind(b jsonbind.Binder) {
//		b.Field("samples", jsonbind.Fixed(r.samples[:], &r.nsamples))
//	}
type FixedSlice[T any] struct {
	backing []T
	size    *int
}

// Fixed returns a fixed-capacity sequence view over backing and size.
// The capacity is len(backing).
func Fixed[T any](backing []T, size *int) *FixedSlice[T] {
	return &FixedSlice[T]{backing: backing, size: size}
}

var _ Sequence = (*FixedSlice[int])(nil)

func (s *FixedSlice[T]) Len() int {
	n := *s.size
	if n < 0 {
		return 0
	}
	if n > len(s.backing) {
		return len(s.backing)
	}
	return n
}

func (s *FixedSlice[T]) Cap() int {
	return len(s.backing)
}

func (s *FixedSlice[T]) Resize(n int) error {
	if n > len(s.backing) {
		return NewCapacityError(n, len(s.backing))
	}

	var zero T
	for i := range s.backing {
		s.backing[i] = zero
	}

	*s.size = n
	return nil
}

func (s *FixedSlice[T]) At(i int) any {
	return &s.backing[i]
}

// Slice returns the logical elements as a sub-slice of the backing storage.
func (s *FixedSlice[T]) Slice() []T {
	return s.backing[:s.Len()]
}
