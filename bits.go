package jsonbind

import (
	"github.com/cockroachdb/errors"
	"github.com/jsonbind/jsonbind/types"
)

// A BitVector is the capability implemented by fixed-width bit vectors. The
// wire form depends only on the width: up to 64 bits it is an unsigned
// integer, with an exact-width '0'/'1' string accepted as an alternate
// decode form; above 64 bits it is always an exact-width '0'/'1' string.
// Bit 0 is the last character of the string form.
//
// A type must not implement BitVector together with another composite
// capability.
type BitVector interface {
	// Width returns the fixed number of bits.
	Width() int

	// Uint64 returns the low 64 bits.
	Uint64() uint64

	// SetUint64 replaces the vector with the low Width bits of x.
	SetUint64(x uint64)

	// BitString renders the vector as Width '0'/'1' characters.
	BitString() string

	// SetBitString replaces the vector from an exact-width '0'/'1' string.
	SetBitString(s string) error
}

func decodeBitVector(v types.Value, bv BitVector) error {
	if tv, ok := v.(types.TextValue); ok {
		return bv.SetBitString(string(tv))
	}

	if bv.Width() <= 64 {
		x, err := types.ToUint64(v)
		if err != nil {
			return err
		}
		bv.SetUint64(x)
		return nil
	}

	return errors.Errorf("expected a %d-character bit string, got %s", bv.Width(), v.Type())
}

func encodeBitVector(bv BitVector) types.Value {
	if bv.Width() <= 64 {
		return encodeUint64(bv.Uint64())
	}

	return types.NewTextValue(bv.BitString())
}

// Bits is a fixed-width bit vector of arbitrary width.
type Bits struct {
	width int
	words []uint64
}

var _ BitVector = (*Bits)(nil)

// MakeBits returns a zeroed bit vector of the given width.
func MakeBits(width int) Bits {
	return Bits{
		width: width,
		words: make([]uint64, (width+63)/64),
	}
}

func (b *Bits) Width() int {
	return b.width
}

// Bit returns the i-th bit.
func (b *Bits) Bit(i int) bool {
	if i < 0 || i >= b.width {
		return false
	}
	return b.words[i/64]&(1<<(uint(i)%64)) != 0
}

// SetBit sets the i-th bit to x.
func (b *Bits) SetBit(i int, x bool) {
	if i < 0 || i >= b.width {
		return
	}
	if x {
		b.words[i/64] |= 1 << (uint(i) % 64)
	} else {
		b.words[i/64] &^= 1 << (uint(i) % 64)
	}
}

func (b *Bits) Uint64() uint64 {
	if len(b.words) == 0 {
		return 0
	}
	return b.words[0] & b.mask(0)
}

func (b *Bits) SetUint64(x uint64) {
	for i := range b.words {
		b.words[i] = 0
	}
	if len(b.words) > 0 {
		b.words[0] = x & b.mask(0)
	}
}

func (b *Bits) BitString() string {
	buf := make([]byte, b.width)
	for i := 0; i < b.width; i++ {
		// bit 0 is the last character
		if b.Bit(i) {
			buf[b.width-1-i] = '1'
		} else {
			buf[b.width-1-i] = '0'
		}
	}

	return string(buf)
}

func (b *Bits) SetBitString(s string) error {
	if len(s) != b.width {
		return errors.Errorf("bit string length %d does not match width %d", len(s), b.width)
	}

	for i := range b.words {
		b.words[i] = 0
	}
	for i := 0; i < b.width; i++ {
		switch s[b.width-1-i] {
		case '1':
			b.words[i/64] |= 1 << (uint(i) % 64)
		case '0':
		default:
			return errors.Errorf("invalid character %q in bit string", s[b.width-1-i])
		}
	}

	return nil
}

func (b *Bits) String() string {
	return b.BitString()
}

// mask returns the valid-bit mask for word i.
func (b *Bits) mask(i int) uint64 {
	last := (b.width - 1) / 64
	if i < last {
		return ^uint64(0)
	}
	rem := uint(b.width % 64)
	if rem == 0 {
		return ^uint64(0)
	}
	return (uint64(1) << rem) - 1
}
