package jsonbind_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jsonbind/jsonbind"
)

type color int

const (
	red color = iota
	green
	blue
)

func (color) EnumNames() []string {
	return []string{"red", "green", "blue"}
}

type level uint8

func (level) EnumMax() int64 { return 5 }

func TestNamedEnum(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for want, label := range map[color]string{red: "red", green: "green", blue: "blue"} {
			var c color
			require.NoError(t, jsonbind.Decode([]byte(`"`+label+`"`), &c))
			require.Equal(t, want, c)

			out, err := jsonbind.Marshal(&c)
			require.NoError(t, err)
			require.Equal(t, `"`+label+`"`, string(out))
		}
	})

	t.Run("unknown label", func(t *testing.T) {
		var c color
		err := jsonbind.Decode([]byte(`"magenta"`), &c)
		require.Error(t, err)

		var ue *jsonbind.UnknownEnumError
		require.ErrorAs(t, err, &ue)
		require.Equal(t, "magenta", ue.Label)
	})

	t.Run("labels are not ordinals", func(t *testing.T) {
		var c color
		require.Error(t, jsonbind.Decode([]byte(`1`), &c))
	})

	t.Run("encoding a value outside the table fails", func(t *testing.T) {
		c := color(99)
		_, err := jsonbind.Marshal(&c)
		require.Error(t, err)
	})
}

func TestBoundedEnum(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, x := range []level{0, 4} {
			out, err := jsonbind.Marshal(&x)
			require.NoError(t, err)

			var back level
			require.NoError(t, jsonbind.Decode(out, &back))
			require.Equal(t, x, back)
		}
	})

	t.Run("range check", func(t *testing.T) {
		var l level
		err := jsonbind.Decode([]byte(`5`), &l)
		require.Error(t, err)

		var re *jsonbind.EnumRangeError
		require.ErrorAs(t, err, &re)
		require.Equal(t, int64(5), re.Value)
		require.Equal(t, int64(5), re.Max)

		require.Error(t, jsonbind.Decode([]byte(`-1`), &l))
		require.NoError(t, jsonbind.Decode([]byte(`4`), &l))
		require.Equal(t, level(4), l)
	})
}

type confused int

func (confused) EnumNames() []string { return []string{"a"} }
func (confused) EnumMax() int64      { return 1 }

// an enum must pick one wire form, not both
func TestEnumConflict(t *testing.T) {
	var c confused
	require.Error(t, jsonbind.Decode([]byte(`"a"`), &c))

	_, err := jsonbind.Marshal(&c)
	require.Error(t, err)
}

// the label table is built once per type and is safe under concurrent use
func TestEnumTableConcurrency(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		i := i
		g.Go(func() error {
			c := color(i % 3)
			out, err := jsonbind.Marshal(&c)
			if err != nil {
				return err
			}

			var back color
			if err := jsonbind.Decode(out, &back); err != nil {
				return err
			}
			if back != c {
				return fmt.Errorf("got %d, want %d", back, c)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
