package jsonbind_test

import (
	"fmt"

	"github.com/jsonbind/jsonbind"
)

type message struct {
	From string
	Text string
	Prio int
}

func (m *message) Bind(b jsonbind.Binder) {
	b.Name("message").
		Field("from", &m.From).
		Field("text", &m.Text).
		Opt("prio", &m.Prio, 0)
}

func ExampleUnmarshal() {
	m, err := jsonbind.Unmarshal[message]([]byte(`{"from":"amy","text":"hello"}`))
	if err != nil {
		panic(err)
	}

	fmt.Println(m.From, m.Text, m.Prio)
	// Output: amy hello 0
}

func ExampleMarshal() {
	m := message{From: "amy", Text: "hello", Prio: 2}

	data, err := jsonbind.Marshal(&m)
	if err != nil {
		panic(err)
	}

	fmt.Println(string(data))
	// Output: {"from":"amy","text":"hello","prio":2}
}

func ExampleAsJSON() {
	m := message{From: "amy", Text: "hello"}
	fmt.Printf("sending %s\n", jsonbind.AsJSON(&m))
	// Output: sending {"from":"amy","text":"hello"}
}

func ExampleAllowComments() {
	data := []byte(`{
		"from": "amy", // sender
		"text": "hello",
	}`)

	m, err := jsonbind.Unmarshal[message](data, jsonbind.AllowComments())
	if err != nil {
		panic(err)
	}

	fmt.Println(m.Text)
	// Output: hello
}
