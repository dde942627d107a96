package fyve

import (
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/shdperr"
)

// Reader decodes a stream of fyve operations from a bit decoder. It
// reads only through the decoder's ReadUint, so it works the same over
// an Msb0 decoder (incoming payloads) or an Lsb0 one (the client-side
// response decoders in package events/v1).
type Reader struct {
	dec *bitio.Decoder
}

// NewReader wraps dec, which may use either bit order.
func NewReader(dec *bitio.Decoder) *Reader {
	return &Reader{dec: dec}
}

// Remaining returns the number of bits still to be read.
func (r *Reader) Remaining() int { return r.dec.Remaining() }

// Decoder exposes the underlying bit decoder, for callers that need to
// read non-fyve fields (e.g. a Utf8Chain's 15-bit length prefix)
// interleaved with operations.
func (r *Reader) Decoder() *bitio.Decoder { return r.dec }

// ReadOperation reads one operation: a 5-bit chunk that is either the
// System sentinel (followed by a 5-bit OpCode) or the start of a
// character chain (chunks repeat while equal to Continuation, for at
// most maxChainChunks total).
//
// Unknown operation codes and fyve codes with no registered character
// both surface as shdperr.BadRequest.
func (r *Reader) ReadOperation() (Operation, error) {
	first, err := r.dec.ReadUint(5)
	if err != nil {
		return Operation{}, err
	}

	if first == System {
		op, err := r.dec.ReadUint(5)
		if err != nil {
			return Operation{}, err
		}
		switch OpCode(op) {
		case OpUtf8Chain, OpStartOfTag, OpStartOfAttributes, OpStartOfData, OpEndOfData:
			return Operation{Kind: KindSystem, Op: OpCode(op)}, nil
		default:
			return Operation{}, shdperr.New(400, shdperr.BadRequest, "unknown fyve operation code")
		}
	}

	code := first
	chunks := 1
	for code&0b11111 == Continuation && chunks < maxChainChunks {
		next, err := r.dec.ReadUint(5)
		if err != nil {
			return Operation{}, err
		}
		code = (code << 5) | next
		chunks++
	}

	ch, ok := Lookup(code)
	if !ok {
		return Operation{}, shdperr.New(400, shdperr.BadRequest, "unknown fyve character code")
	}
	return Operation{Kind: KindCharacter, Char: ch}, nil
}

// ReadString reads Character operations until n characters have been
// collected or a System operation is encountered; the latter is
// reported as an error, since content runs never embed a bare system
// code.
func (r *Reader) ReadString(n int) (string, error) {
	out := make([]rune, 0, n)
	for len(out) < n {
		op, err := r.ReadOperation()
		if err != nil {
			return "", err
		}
		if op.Kind != KindCharacter {
			return "", shdperr.New(400, shdperr.BadRequest, "unexpected system operation in character content")
		}
		out = append(out, op.Char)
	}
	return string(out), nil
}
