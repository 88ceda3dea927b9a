package jsonbind

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/jsonbind/jsonbind/types"
)

// A Variant is a closed sum type: a fixed, ordered list of alternatives with
// exactly one active at a time. The wire form is an object carrying the
// active alternative's zero-based position under "type". Struct-like
// alternatives flatten their own fields into the same object; any other
// alternative nests under "value".
type Variant interface {
	// NumAlts returns the number of alternatives.
	NumAlts() int

	// NewAlt returns a pointer to a fresh zero value of alternative i.
	NewAlt(i int) any

	// Select stores the decoded value (a pointer obtained from NewAlt) as
	// the active alternative i.
	Select(i int, v any)

	// Selected returns the active alternative's index and a pointer to its
	// value.
	Selected() (int, any)
}

func decodeVariant(v types.Value, vr Variant) error {
	obj, ok := v.(*types.Object)
	if !ok {
		return errors.Errorf("expected object, got %s", v.Type())
	}

	tv, err := obj.Get("type")
	if err != nil {
		return NewMissingFieldError("type", fmt.Sprintf("%T", vr))
	}

	idx64, err := types.ToInt64(tv)
	if err != nil {
		return NewTypeMismatchError("type", fmt.Sprintf("%T", vr), err)
	}
	idx := int(idx64)
	if idx64 < 0 || idx >= vr.NumAlts() {
		return errors.Errorf("variant index %d out of range [0, %d)", idx64, vr.NumAlts())
	}

	alt := vr.NewAlt(idx)
	if b, ok := alt.(Bindable); ok {
		// discriminant and payload fields coexist at one level
		if err := decodeStruct(obj, b); err != nil {
			return err
		}
	} else {
		pv, err := obj.Get("value")
		if err != nil {
			return NewMissingFieldError("value", fmt.Sprintf("%T", vr))
		}
		if err := decodeValue(pv, alt); err != nil {
			return NewTypeMismatchError("value", fmt.Sprintf("%T", vr), err)
		}
	}

	vr.Select(idx, alt)
	return nil
}

func encodeVariant(vr Variant) (types.Value, error) {
	idx, alt := vr.Selected()

	obj := types.NewObject()
	obj.Add("type", types.NewIntegerValue(int64(idx)))

	if b, ok := alt.(Bindable); ok {
		w := writer{obj: obj}
		b.Bind(&w)
		if w.err != nil {
			return nil, w.err
		}
		return obj, nil
	}

	v, err := encodeValue(alt)
	if err != nil {
		return nil, err
	}
	obj.Add("value", v)

	return obj, nil
}

// Union2 is a ready-made two-alternative sum.
type Union2[A, B any] struct {
	idx int
	a   A
	b   B
}

var _ Variant = (*Union2[int, string])(nil)

// U2Of0 returns a Union2 holding the first alternative.
func U2Of0[A, B any](v A) Union2[A, B] {
	return Union2[A, B]{idx: 0, a: v}
}

// U2Of1 returns a Union2 holding the second alternative.
func U2Of1[A, B any](v B) Union2[A, B] {
	return Union2[A, B]{idx: 1, b: v}
}

// Index returns the active alternative's position.
func (u *Union2[A, B]) Index() int { return u.idx }

// Alt0 returns the first alternative's value and whether it is active.
func (u *Union2[A, B]) Alt0() (A, bool) { return u.a, u.idx == 0 }

// Alt1 returns the second alternative's value and whether it is active.
func (u *Union2[A, B]) Alt1() (B, bool) { return u.b, u.idx == 1 }

func (u *Union2[A, B]) NumAlts() int { return 2 }

func (u *Union2[A, B]) NewAlt(i int) any {
	if i == 0 {
		return new(A)
	}
	return new(B)
}

func (u *Union2[A, B]) Select(i int, v any) {
	u.idx = i
	if i == 0 {
		u.a = *v.(*A)
		var zero B
		u.b = zero
		return
	}
	u.b = *v.(*B)
	var zero A
	u.a = zero
}

func (u *Union2[A, B]) Selected() (int, any) {
	if u.idx == 0 {
		return 0, &u.a
	}
	return 1, &u.b
}

// Union3 is a ready-made three-alternative sum.
type Union3[A, B, C any] struct {
	idx int
	a   A
	b   B
	c   C
}

var _ Variant = (*Union3[int, string, bool])(nil)

// U3Of0 returns a Union3 holding the first alternative.
func U3Of0[A, B, C any](v A) Union3[A, B, C] {
	return Union3[A, B, C]{idx: 0, a: v}
}

// U3Of1 returns a Union3 holding the second alternative.
func U3Of1[A, B, C any](v B) Union3[A, B, C] {
	return Union3[A, B, C]{idx: 1, b: v}
}

// U3Of2 returns a Union3 holding the third alternative.
func U3Of2[A, B, C any](v C) Union3[A, B, C] {
	return Union3[A, B, C]{idx: 2, c: v}
}

// Index returns the active alternative's position.
func (u *Union3[A, B, C]) Index() int { return u.idx }

// Alt0 returns the first alternative's value and whether it is active.
func (u *Union3[A, B, C]) Alt0() (A, bool) { return u.a, u.idx == 0 }

// Alt1 returns the second alternative's value and whether it is active.
func (u *Union3[A, B, C]) Alt1() (B, bool) { return u.b, u.idx == 1 }

// Alt2 returns the third alternative's value and whether it is active.
func (u *Union3[A, B, C]) Alt2() (C, bool) { return u.c, u.idx == 2 }

func (u *Union3[A, B, C]) NumAlts() int { return 3 }

func (u *Union3[A, B, C]) NewAlt(i int) any {
	switch i {
	case 0:
		return new(A)
	case 1:
		return new(B)
	}
	return new(C)
}

func (u *Union3[A, B, C]) Select(i int, v any) {
	var za A
	var zb B
	var zc C
	u.a, u.b, u.c = za, zb, zc

	u.idx = i
	switch i {
	case 0:
		u.a = *v.(*A)
	case 1:
		u.b = *v.(*B)
	default:
		u.c = *v.(*C)
	}
}

func (u *Union3[A, B, C]) Selected() (int, any) {
	switch u.idx {
	case 0:
		return 0, &u.a
	case 1:
		return 1, &u.b
	}
	return 2, &u.c
}
