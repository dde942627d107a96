package bitio

import "github.com/coregx/shdp/shdperr"

// Decoder is a cursor-based reader over a packed byte buffer, unpacked
// into individual bits according to order at construction time. Unlike
// Encoder, a Decoder never grows; pos tracks how many bits have been
// consumed so far.
type Decoder struct {
	order Order
	bits  []bool
	pos   int
}

// NewDecoder interprets data as a sequence of bits in the given order
// and returns a Decoder positioned at the start. The order must match
// the order the peer used to Finalize its Encoder.
func NewDecoder(data []byte, order Order) *Decoder {
	return &Decoder{order: order, bits: unpack(data, order)}
}

func unpack(data []byte, order Order) []bool {
	bits := make([]bool, 0, len(data)*8)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			var bit bool
			if order == Msb0 {
				bit = b&(1<<uint(7-i)) != 0
			} else {
				bit = b&(1<<uint(i)) != 0
			}
			bits = append(bits, bit)
		}
	}
	return bits
}

// newDecoderFromBits builds a Decoder directly over an already-unpacked
// bit slice, used internally by ReadSlice so a sub-buffer shares the
// representation of its parent without a round trip through bytes.
func newDecoderFromBits(bits []bool, order Order) *Decoder {
	return &Decoder{order: order, bits: bits}
}

// Order reports the bit order this decoder was constructed with.
func (d *Decoder) Order() Order { return d.order }

// Position returns the number of bits consumed so far.
func (d *Decoder) Position() int { return d.pos }

// Len returns the total number of bits available.
func (d *Decoder) Len() int { return len(d.bits) }

// Remaining returns the number of unconsumed bits.
func (d *Decoder) Remaining() int { return len(d.bits) - d.pos }

// ReadUint consumes the next n bits, n in [1,32], and returns them as
// an unsigned integer with the first-consumed bit as the high bit of
// the result.
func (d *Decoder) ReadUint(n int) (uint32, error) {
	if n < 1 || n > 32 {
		return 0, shdperr.New(shdperr.CodeBitOverflow, shdperr.SizeConstraintViolation,
			"data of more than 32 bits long are not allowed")
	}
	if d.pos+n > len(d.bits) {
		return 0, shdperr.New(shdperr.CodeBitOverflow, shdperr.SizeConstraintViolation, "out of bound")
	}
	var v uint32
	for i := 0; i < n; i++ {
		bit := uint32(0)
		if d.bits[d.pos] {
			bit = 1
		}
		v = (v << 1) | bit
		d.pos++
	}
	return v, nil
}

// ReadBytes reads n whole bytes (8*n bits) and returns them.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := d.ReadUint(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// ReadSlice materializes a sub-decoder over the half-open bit range
// [from, to) without advancing d's cursor. The returned Decoder shares
// d's bit order and starts at position 0 of the slice.
func (d *Decoder) ReadSlice(from, to int) (*Decoder, error) {
	if from < 0 || from > len(d.bits) || to < from || to > len(d.bits) {
		return nil, shdperr.New(shdperr.CodeSliceOutOfBound, shdperr.SizeConstraintViolation, "slice range out of bound")
	}
	sub := make([]bool, to-from)
	copy(sub, d.bits[from:to])
	return newDecoderFromBits(sub, d.order), nil
}
