package jsonbind

// An Assoc is the capability implemented by map-like containers. The wire
// form is an object: each entry becomes one member, the key passing through
// its own adapter from the member name both ways. Decode inserts entries
// with insert-if-absent semantics, so the first occurrence of a duplicate
// member name wins and later ones are silently dropped.
//
// A type must not implement Assoc together with another composite
// capability.
type Assoc interface {
	// Len returns the number of entries.
	Len() int

	// Clear removes all entries.
	Clear()

	// Entries iterates over the entries in the container's order. Keys and
	// values are passed as stored.
	Entries(fn func(key, value any) error) error

	// NewEntry returns pointers to a fresh key and value pair for decoding.
	NewEntry() (key, value any)

	// Put inserts the entry produced by NewEntry if the key is absent and
	// reports whether it was inserted.
	Put(key, value any) bool
}

// OrderedMap is a key-unique associative container that keeps insertion
// order, so an encode emits members in exactly the order a decode saw them.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

var _ Assoc = (*OrderedMap[string, int])(nil)

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

func (m *OrderedMap[K, V]) Clear() {
	m.keys = m.keys[:0]
	m.values = nil
}

// Get returns the value stored under k.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Set stores v under k, keeping k's original position if it already exists.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Delete removes the entry stored under k.
func (m *OrderedMap[K, V]) Delete(k K) {
	if _, ok := m.values[k]; !ok {
		return
	}
	delete(m.values, k)
	for i := range m.keys {
		if m.keys[i] == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			return
		}
	}
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

func (m *OrderedMap[K, V]) Entries(fn func(key, value any) error) error {
	for _, k := range m.keys {
		v := m.values[k]
		if err := fn(k, v); err != nil {
			return err
		}
	}

	return nil
}

func (m *OrderedMap[K, V]) NewEntry() (key, value any) {
	return new(K), new(V)
}

func (m *OrderedMap[K, V]) Put(key, value any) bool {
	k := *key.(*K)
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[k]; ok {
		return false
	}

	m.keys = append(m.keys, k)
	m.values[k] = *value.(*V)
	return true
}
