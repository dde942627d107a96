package bitio

import "github.com/coregx/shdp/shdperr"

// maxBufferBits is the largest length, in bits, an Encoder may reach. It
// matches the 32-bit data_size field carried on the wire.
const maxBufferBits = 1 << 32

// Encoder is an append-only bit buffer. It has no read cursor; every
// call appends to the end. Two Encoders fed the same sequence of calls
// but constructed with opposite Order values produce wire bytes that
// are byte-wise bit-reversed of one another.
type Encoder struct {
	order Order
	bits  []bool
}

// NewEncoder returns an empty Encoder that will pack its bits according
// to order when Finalize is called.
func NewEncoder(order Order) *Encoder {
	return &Encoder{order: order}
}

// Order reports the bit order this encoder packs into on Finalize.
func (e *Encoder) Order() Order { return e.order }

// Len returns the number of bits appended so far.
func (e *Encoder) Len() int { return len(e.bits) }

// AppendUint pushes the low n bits of value, n in [1,32], with the
// field's most-significant bit appended first regardless of e's bit
// order - bit order only affects how Finalize packs bits into bytes,
// never the order fields are written within a call.
func (e *Encoder) AppendUint(value uint32, n int) error {
	if n < 1 || n > 32 {
		return shdperr.New(shdperr.CodeBitOverflow, shdperr.SizeConstraintViolation,
			"data of more than 32 bits long are not allowed")
	}
	if len(e.bits)+n > maxBufferBits {
		return shdperr.New(shdperr.CodeBitOverflow, shdperr.SizeConstraintViolation,
			"maximum of 2^32 bits allowed")
	}
	for i := n - 1; i >= 0; i-- {
		e.bits = append(e.bits, (value>>uint(i))&1 == 1)
	}
	return nil
}

// AppendBytes appends each byte of b with one AppendUint(byte, 8) call per byte.
func (e *Encoder) AppendBytes(b []byte) error {
	for _, by := range b {
		if err := e.AppendUint(uint32(by), 8); err != nil {
			return err
		}
	}
	return nil
}

// AppendBits concatenates the contents of other onto e, regardless of
// other's own Order (the bits were already materialized logically when
// other.AppendUint* was called; only Finalize cares about Order).
func (e *Encoder) AppendBits(other *Encoder) {
	e.bits = append(e.bits, other.bits...)
}

// PadToByte appends zero bits until Len is a multiple of 8.
func (e *Encoder) PadToByte() {
	for len(e.bits)%8 != 0 {
		e.bits = append(e.bits, false)
	}
}

// Finalize packs the accumulated bits into octets and returns them.
// Msb0 packs directly, so the first appended bit is the most-significant
// bit of the first byte; Lsb0 reverses the bits within each output byte,
// so the first appended bit is the least-significant bit of the first
// byte instead. This implementation always packs Msb0-first then reverses
// for Lsb0, which is simpler to reason about than threading the order
// through the pack loop itself.
func (e *Encoder) Finalize() []byte {
	nbytes := (len(e.bits) + 7) / 8
	out := make([]byte, nbytes)
	for i, bit := range e.bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	if e.order == Lsb0 {
		for i, b := range out {
			out[i] = reverseByte(b)
		}
	}
	return out
}

func reverseByte(b byte) byte {
	var r byte
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}
