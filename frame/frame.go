// Package frame implements the SHDP frame header: an 8-bit version, a
// 16-bit event id and a 32-bit data_size, followed by the payload and
// zero-bit padding to a byte boundary.
//
//	 bit 0            8                24                          56
//	 +----------------+------------------+--------------------------+
//	 |   version (8)  |    event (16)    |       data_size (32)     |
//	 +----------------+------------------+--------------------------+
//	 | payload (data_size bits), then 0..7 padding bits              |
//	 +-----------------------------------------------------------------+
//
// Incoming (client->server) frames are always parsed in bitio.Msb0;
// outgoing (server->client) frames are always emitted in bitio.Lsb0.
package frame

import (
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/shdperr"
)

const (
	minPayloadBits = 8
	maxPayloadBits = 1 << 32
)

// Header holds the three fixed-width fields that precede every SHDP
// payload. DataSize is kept as a full uint32 in memory; a prior
// implementation of this format narrowed it to uint16 and silently
// truncated any payload above 65535 bits. This implementation
// preserves the full 32-bit range end to end.
type Header struct {
	Version  Version
	Event    uint16
	DataSize uint32
}

// PayloadEncoder is anything that can serialize itself into a bit
// buffer and report the event id it belongs under. v1 event response
// types (package events/v1) implement this.
type PayloadEncoder interface {
	Encode() (*bitio.Encoder, error)
	EventID() uint16
}

// Encode builds a complete wire frame: version byte, event id,
// data_size, the payload's bits, and zero-bit padding to the next byte
// boundary. The payload encoder's own bit order determines the order
// the whole frame (including the header) is packed in, matching the
// emitter's role (server responses encode Lsb0, client requests encode
// Msb0 when constructed directly rather than through a registry
// factory).
func Encode(version Version, payload PayloadEncoder) ([]byte, error) {
	if _, err := ParseVersion(version.Byte()); err != nil {
		return nil, err
	}

	enc, err := payload.Encode()
	if err != nil {
		return nil, err
	}

	dataSize := enc.Len()
	if dataSize > maxPayloadBits {
		return nil, shdperr.ErrBitOverflow
	}
	if dataSize < minPayloadBits {
		return nil, shdperr.ErrFrameTooSmall
	}

	header := bitio.NewEncoder(enc.Order())
	if err := header.AppendUint(uint32(version.Byte()), 8); err != nil {
		return nil, err
	}
	if err := header.AppendUint(uint32(payload.EventID()), 16); err != nil {
		return nil, err
	}
	if err := header.AppendUint(uint32(dataSize), 32); err != nil {
		return nil, err
	}
	header.AppendBits(enc)
	header.PadToByte()

	return header.Finalize(), nil
}

// Decode reads a Header plus its payload decoder from raw wire bytes
// interpreted in order. The returned *bitio.Decoder is positioned at
// the start of the payload (bit 56) and sliced to exactly DataSize
// bits, ready to be handed to a registry factory.
func Decode(data []byte, order bitio.Order) (Header, *bitio.Decoder, error) {
	dec := bitio.NewDecoder(data, order)

	versionByte, err := dec.ReadUint(8)
	if err != nil {
		return Header{}, nil, err
	}
	version, err := ParseVersion(uint8(versionByte))
	if err != nil {
		return Header{}, nil, err
	}

	event, err := dec.ReadUint(16)
	if err != nil {
		return Header{}, nil, err
	}

	dataSize, err := dec.ReadUint(32)
	if err != nil {
		return Header{}, nil, err
	}

	payload, err := dec.ReadSlice(56, 56+int(dataSize))
	if err != nil {
		return Header{}, nil, err
	}

	if validate, ok := validatorFor(version); ok {
		probe, err := dec.ReadSlice(56, 56+int(dataSize))
		if err != nil {
			return Header{}, nil, err
		}
		if err := validate(probe); err != nil {
			return Header{}, nil, err
		}
	}

	return Header{Version: version, Event: uint16(event), DataSize: dataSize}, payload, nil
}
