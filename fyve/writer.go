package fyve

import (
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/shdperr"
)

// WriteSystem appends a System chunk (5 bits) followed by op (5 bits)
// to enc - the 10-bit sequence used for StartOfTag/StartOfAttributes/
// StartOfData/EndOfData/Utf8Chain markers.
func WriteSystem(enc *bitio.Encoder, op OpCode) error {
	if err := enc.AppendUint(System, 5); err != nil {
		return err
	}
	return enc.AppendUint(uint32(op), 5)
}

// WriteChar appends the fyve chain for ch to enc. It returns
// shdperr.BadRequest if ch has no entry in the alphabet.
func WriteChar(enc *bitio.Encoder, ch rune) error {
	code, ok := CodeOf(ch)
	if !ok {
		return shdperr.New(400, shdperr.BadRequest, "character not representable in the fyve alphabet")
	}
	return writeChunks(enc, code)
}

// writeChunks splits code into its 5-bit chunks (most significant
// first) based on which length stratum it falls in, and appends them.
func writeChunks(enc *bitio.Encoder, code uint32) error {
	var n int
	switch {
	case code <= 30:
		n = 1
	case code <= 1022:
		n = 2
	case code <= 32766:
		n = 3
	default:
		n = 4
	}
	for i := n - 1; i >= 0; i-- {
		chunk := (code >> uint(5*i)) & 0b11111
		if err := enc.AppendUint(chunk, 5); err != nil {
			return err
		}
	}
	return nil
}
