package transport

import (
	"io"

	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/frame"
)

// headerBytes is the fixed 56-bit header's length in bytes.
const headerBytes = 7

// ReadFrame reads exactly one SHDP frame from r: the 56-bit header,
// then whatever whole bytes data_size implies (rounded up to the next
// byte for padding), and hands the concatenated bytes to frame.Decode.
// The header is parsed twice - once here to learn data_size, once
// inside frame.Decode - trading a few wasted bit reads for a single
// authoritative place that understands the header layout.
func ReadFrame(r io.Reader, order bitio.Order) (frame.Header, *bitio.Decoder, error) {
	header := make([]byte, headerBytes)
	if _, err := io.ReadFull(r, header); err != nil {
		return frame.Header{}, nil, err
	}

	hdec := bitio.NewDecoder(header, order)
	if _, err := hdec.ReadUint(8); err != nil {
		return frame.Header{}, nil, err
	}
	if _, err := hdec.ReadUint(16); err != nil {
		return frame.Header{}, nil, err
	}
	dataSize, err := hdec.ReadUint(32)
	if err != nil {
		return frame.Header{}, nil, err
	}

	payload := make([]byte, (dataSize+7)/8)
	if len(payload) > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return frame.Header{}, nil, err
		}
	}

	full := make([]byte, 0, len(header)+len(payload))
	full = append(full, header...)
	full = append(full, payload...)
	return frame.Decode(full, order)
}
