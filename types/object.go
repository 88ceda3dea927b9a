package types

import (
	"bytes"
	"strconv"

	"github.com/cockroachdb/errors"
)

var _ Value = NewObject()

// A Member is one name/value pair of an object.
type Member struct {
	Name  string
	Value Value
}

// An Object is an ordered list of named members. It is itself a node.
// Members keep their insertion order. The parser may append duplicate
// names; Get always returns the first member carrying the name.
type Object struct {
	members []Member
}

// NewObject creates an empty object node.
func NewObject() *Object {
	return new(Object)
}

// Add appends a member to the object without looking for an existing name.
func (o *Object) Add(name string, v Value) *Object {
	o.members = append(o.members, Member{name, v})
	return o
}

// Set replaces the member carrying the given name, or appends one.
func (o *Object) Set(name string, v Value) {
	for i := range o.members {
		if o.members[i].Name == name {
			o.members[i].Value = v
			return
		}
	}

	o.Add(name, v)
}

// Get returns the value of the first member carrying the given name.
// Returns ErrFieldNotFound if no member does.
func (o *Object) Get(name string) (Value, error) {
	for _, m := range o.members {
		if m.Name == name {
			return m.Value, nil
		}
	}

	return nil, errors.Wrapf(ErrFieldNotFound, "%s not found", name)
}

// Iterate goes through all the members of the object in insertion order and
// calls the given function with each one of them. If the given function
// returns an error, the iteration stops.
func (o *Object) Iterate(fn func(name string, value Value) error) error {
	for _, m := range o.members {
		err := fn(m.Name, m.Value)
		if err != nil {
			return err
		}
	}

	return nil
}

// Len of the object.
func (o *Object) Len() int {
	return len(o.members)
}

func (o *Object) V() any {
	return o.members
}

func (o *Object) Type() Type {
	return TypeObject
}

func (o *Object) String() string {
	d, _ := o.MarshalJSON()
	return string(d)
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString(strconv.Quote(m.Name))
		buf.WriteByte(':')

		data, err := m.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
