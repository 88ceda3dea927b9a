package jsonbind_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonbind/jsonbind"
)

type reading struct {
	samples  [4]float64
	nsamples int
}

func (r *reading) Bind(b jsonbind.Binder) {
	b.Name("reading").
		Field("samples", jsonbind.Fixed(r.samples[:], &r.nsamples))
}

func TestFixedSlice(t *testing.T) {
	t.Run("fills up to the logical size", func(t *testing.T) {
		var r reading
		require.NoError(t, jsonbind.Decode([]byte(`{"samples":[1.5,2.5]}`), &r))
		require.Equal(t, 2, r.nsamples)
		require.Equal(t, [4]float64{1.5, 2.5, 0, 0}, r.samples)
	})

	t.Run("shorter input resets stale backing slots", func(t *testing.T) {
		r := reading{samples: [4]float64{9, 9, 9, 9}, nsamples: 4}
		require.NoError(t, jsonbind.Decode([]byte(`{"samples":[1.5]}`), &r))
		require.Equal(t, 1, r.nsamples)
		require.Equal(t, [4]float64{1.5, 0, 0, 0}, r.samples)
	})

	t.Run("exact capacity succeeds", func(t *testing.T) {
		var r reading
		require.NoError(t, jsonbind.Decode([]byte(`{"samples":[1.5,2.5,3.5,4.5]}`), &r))
		require.Equal(t, 4, r.nsamples)
	})

	t.Run("overflow fails with both sizes", func(t *testing.T) {
		var r reading
		err := jsonbind.Decode([]byte(`{"samples":[1.5,2.5,3.5,4.5,5.5]}`), &r)
		require.Error(t, err)

		var ce *jsonbind.CapacityError
		require.ErrorAs(t, err, &ce)
		require.Equal(t, 5, ce.Len)
		require.Equal(t, 4, ce.Cap)
	})

	t.Run("encodes only the logical elements", func(t *testing.T) {
		r := reading{samples: [4]float64{1.5, 2.5, 9, 9}, nsamples: 2}
		out, err := jsonbind.Marshal(&r)
		require.NoError(t, err)
		require.Equal(t, `{"samples":[1.5,2.5]}`, string(out))
	})

	t.Run("Slice views the logical elements", func(t *testing.T) {
		backing := []int{1, 2, 3}
		n := 2
		s := jsonbind.Fixed(backing, &n)
		require.Equal(t, []int{1, 2}, s.Slice())
		require.Equal(t, 3, s.Cap())
	})
}

func TestOrderedMap(t *testing.T) {
	t.Run("keeps wire order across a round trip", func(t *testing.T) {
		var m jsonbind.OrderedMap[string, int]
		require.NoError(t, jsonbind.Decode([]byte(`{"z":1,"a":2,"m":3}`), &m))
		require.Equal(t, []string{"z", "a", "m"}, m.Keys())

		out, err := jsonbind.Marshal(&m)
		require.NoError(t, err)
		require.Equal(t, `{"z":1,"a":2,"m":3}`, string(out))
	})

	t.Run("first duplicate wins", func(t *testing.T) {
		var m jsonbind.OrderedMap[string, int]
		require.NoError(t, jsonbind.Decode([]byte(`{"a":1,"a":2}`), &m))
		require.Equal(t, 1, m.Len())

		v, ok := m.Get("a")
		require.True(t, ok)
		require.Equal(t, 1, v)
	})

	t.Run("Set and Delete", func(t *testing.T) {
		var m jsonbind.OrderedMap[string, int]
		m.Set("a", 1)
		m.Set("b", 2)
		m.Set("a", 3)
		require.Equal(t, []string{"a", "b"}, m.Keys())

		v, ok := m.Get("a")
		require.True(t, ok)
		require.Equal(t, 3, v)

		m.Delete("a")
		require.Equal(t, []string{"b"}, m.Keys())
		_, ok = m.Get("a")
		require.False(t, ok)
	})

	t.Run("decode replaces previous content", func(t *testing.T) {
		var m jsonbind.OrderedMap[string, int]
		m.Set("old", 1)
		require.NoError(t, jsonbind.Decode([]byte(`{"new":2}`), &m))
		require.Equal(t, []string{"new"}, m.Keys())
	})
}

func TestOptional(t *testing.T) {
	t.Run("null round trip", func(t *testing.T) {
		o := jsonbind.Some(5)
		require.NoError(t, jsonbind.Decode([]byte(`null`), &o))
		require.False(t, o.Present())

		out, err := jsonbind.Marshal(&o)
		require.NoError(t, err)
		require.Equal(t, `null`, string(out))
	})

	t.Run("value round trip", func(t *testing.T) {
		o := jsonbind.None[string]()
		require.NoError(t, jsonbind.Decode([]byte(`"here"`), &o))

		v, ok := o.Get()
		require.True(t, ok)
		require.Equal(t, "here", v)

		out, err := jsonbind.Marshal(&o)
		require.NoError(t, err)
		require.Equal(t, `"here"`, string(out))
	})

	t.Run("nested optionals collapse to their value", func(t *testing.T) {
		var o jsonbind.Optional[jsonbind.Optional[int]]
		require.NoError(t, jsonbind.Decode([]byte(`7`), &o))

		inner, ok := o.Get()
		require.True(t, ok)
		v, ok := inner.Get()
		require.True(t, ok)
		require.Equal(t, 7, v)
	})
}
