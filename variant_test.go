package jsonbind_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonbind/jsonbind"
)

type moveCmd struct {
	X int
	Y int
}

func (m *moveCmd) Bind(b jsonbind.Binder) {
	b.Name("moveCmd").
		Field("x", &m.X).
		Field("y", &m.Y)
}

func TestVariantRoundTrip(t *testing.T) {
	t.Run("struct-like alternative flattens", func(t *testing.T) {
		u := jsonbind.U2Of0[moveCmd, string](moveCmd{X: 1, Y: 2})
		out, err := jsonbind.Marshal(&u)
		require.NoError(t, err)
		require.Equal(t, `{"type":0,"x":1,"y":2}`, string(out))

		var back jsonbind.Union2[moveCmd, string]
		require.NoError(t, jsonbind.Decode(out, &back))
		m, ok := back.Alt0()
		require.True(t, ok)
		require.Equal(t, moveCmd{X: 1, Y: 2}, m)
	})

	t.Run("scalar alternative nests under value", func(t *testing.T) {
		u := jsonbind.U2Of1[moveCmd, string]("quit")
		out, err := jsonbind.Marshal(&u)
		require.NoError(t, err)
		require.Equal(t, `{"type":1,"value":"quit"}`, string(out))

		var back jsonbind.Union2[moveCmd, string]
		require.NoError(t, jsonbind.Decode(out, &back))
		s, ok := back.Alt1()
		require.True(t, ok)
		require.Equal(t, "quit", s)
	})

	t.Run("three alternatives", func(t *testing.T) {
		for i, data := range []string{
			`{"type":0,"value":7}`,
			`{"type":1,"value":"s"}`,
			`{"type":2,"value":true}`,
		} {
			var u jsonbind.Union3[int, string, bool]
			require.NoError(t, jsonbind.Decode([]byte(data), &u))
			require.Equal(t, i, u.Index())

			out, err := jsonbind.Marshal(&u)
			require.NoError(t, err)
			require.Equal(t, data, string(out))
		}
	})
}

func TestVariantErrors(t *testing.T) {
	t.Run("missing discriminant", func(t *testing.T) {
		var u jsonbind.Union2[int, string]
		err := jsonbind.Decode([]byte(`{"value":1}`), &u)
		require.Error(t, err)

		var mf *jsonbind.MissingFieldError
		require.ErrorAs(t, err, &mf)
		require.Equal(t, "type", mf.Field)
	})

	t.Run("index out of range", func(t *testing.T) {
		var u jsonbind.Union2[int, string]
		require.Error(t, jsonbind.Decode([]byte(`{"type":2,"value":1}`), &u))
		require.Error(t, jsonbind.Decode([]byte(`{"type":-1,"value":1}`), &u))
	})

	t.Run("non-integer discriminant", func(t *testing.T) {
		var u jsonbind.Union2[int, string]
		require.Error(t, jsonbind.Decode([]byte(`{"type":"0","value":1}`), &u))
	})

	t.Run("not an object", func(t *testing.T) {
		var u jsonbind.Union2[int, string]
		require.Error(t, jsonbind.Decode([]byte(`[0,1]`), &u))
	})

	t.Run("payload mismatch keeps the cause reachable", func(t *testing.T) {
		var u jsonbind.Union2[int, string]
		err := jsonbind.Decode([]byte(`{"type":0,"value":"nope"}`), &u)
		require.Error(t, err)

		var tm *jsonbind.TypeMismatchError
		require.ErrorAs(t, err, &tm)
		require.Equal(t, "value", tm.Field)
	})
}

// the discriminant is the first member so readers can dispatch on a prefix
func TestVariantDiscriminantFirst(t *testing.T) {
	u := jsonbind.U2Of0[moveCmd, string](moveCmd{X: 1, Y: 2})
	out, err := jsonbind.Marshal(&u)
	require.NoError(t, err)
	require.Equal(t, byte('{'), out[0])
	require.Equal(t, `"type":0`, string(out[1:9]))
}
