package jsonbind_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonbind/jsonbind"
)

func TestDecodeSyntaxError(t *testing.T) {
	var c clientConfig
	err := jsonbind.Decode([]byte(`{"name":`), &c)
	require.Error(t, err)

	var se *jsonbind.SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestDecodeFrom(t *testing.T) {
	r := strings.NewReader(`{"host":"h","port":1}`)

	var e endpoint
	require.NoError(t, jsonbind.DecodeFrom(r, &e))
	require.Equal(t, endpoint{Host: "h", Port: 1}, e)
}

func TestMarshalTo(t *testing.T) {
	var buf bytes.Buffer
	e := endpoint{Host: "h", Port: 1}
	require.NoError(t, jsonbind.MarshalTo(&buf, &e))
	require.Equal(t, `{"host":"h","port":1}`, buf.String())
}

func TestAllowComments(t *testing.T) {
	in := `{
		// primary endpoint
		"host": "h",
		/* keep the default port */
	}`

	t.Run("rejected by default", func(t *testing.T) {
		var e endpoint
		require.Error(t, jsonbind.Decode([]byte(in), &e))
	})

	t.Run("accepted with the option", func(t *testing.T) {
		var e endpoint
		require.NoError(t, jsonbind.Decode([]byte(in), &e, jsonbind.AllowComments()))
		require.Equal(t, "h", e.Host)
		require.Equal(t, 8080, e.Port)
	})

	t.Run("unmarshal takes options too", func(t *testing.T) {
		e, err := jsonbind.Unmarshal[endpoint]([]byte(in), jsonbind.AllowComments())
		require.NoError(t, err)
		require.Equal(t, "h", e.Host)
	})
}

func TestAsJSON(t *testing.T) {
	e := endpoint{Host: "h", Port: 1}
	s := fmt.Sprintf("endpoint=%s", jsonbind.AsJSON(&e))
	require.Equal(t, `endpoint={"host":"h","port":1}`, s)

	m := map[int]int{1: 1}
	require.Contains(t, fmt.Sprint(jsonbind.AsJSON(&m)), "!ERROR")
}

func TestUnmarshalFreshValue(t *testing.T) {
	// Unmarshal starts from a zero value, so optional fields come back as
	// their defaults rather than leftovers.
	c, err := jsonbind.Unmarshal[clientConfig]([]byte(`{"name":"a","server":{"host":"h"}}`))
	require.NoError(t, err)
	require.Equal(t, 3, c.Retries)
}
