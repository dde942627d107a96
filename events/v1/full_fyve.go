package v1

import (
	"os"
	"path/filepath"

	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/fyve"
	"github.com/coregx/shdp/registry"
	"github.com/coregx/shdp/shdperr"
)

// FullFyveResponse transmits a non-HTML file's content entirely in the
// fyve alphabet.
type FullFyveResponse struct {
	path string
}

// NewFullFyveResponse builds the 0x0004 response for the file at path.
func NewFullFyveResponse(path string) *FullFyveResponse {
	return &FullFyveResponse{path: path}
}

func (r *FullFyveResponse) EventID() uint16 { return EventFullFyveResponse }

// Encode writes the basename terminated by 0x00, then every content
// byte looked up in the fyve alphabet. A byte with no entry in the
// alphabet surfaces as shdperr.BadRequest.
func (r *FullFyveResponse) Encode() (*bitio.Encoder, error) {
	base := filepath.Base(r.path)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return nil, shdperr.New(400, shdperr.BadRequest, "invalid file name: "+r.path)
	}

	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, shdperr.New(404, shdperr.NotFound, "file not found: "+r.path)
	}

	enc := bitio.NewEncoder(bitio.Lsb0)
	if err := enc.AppendBytes([]byte(base)); err != nil {
		return nil, err
	}
	if err := enc.AppendUint(0, 8); err != nil {
		return nil, err
	}
	for _, b := range content {
		if err := fyve.WriteChar(enc, rune(b)); err != nil {
			return nil, err
		}
	}
	return enc, nil
}

// FullFyveResponseDecoder is the client-side decoder for event 0x0004.
type FullFyveResponseDecoder struct {
	dec *bitio.Decoder

	Filename string
	Content  string
}

// NewFullFyveResponseDecoder is the registry.Factory for event 0x0004.
func NewFullFyveResponseDecoder(dec *bitio.Decoder) registry.RequestDecoder {
	return &FullFyveResponseDecoder{dec: dec}
}

// Decode reads bytes until 0x00, then consumes fyve Character
// operations until the payload is exhausted; any System operation
// inside the content is an error.
func (r *FullFyveResponseDecoder) Decode() error {
	var nameBytes []byte
	for {
		b, err := r.dec.ReadUint(8)
		if err != nil {
			return err
		}
		if b == 0 {
			break
		}
		nameBytes = append(nameBytes, byte(b))
	}
	r.Filename = string(nameBytes)

	reader := fyve.NewReader(r.dec)
	runes := make([]rune, 0, reader.Remaining()/5)
	for reader.Remaining() > 0 {
		op, err := reader.ReadOperation()
		if err != nil {
			return err
		}
		if op.Kind != fyve.KindCharacter {
			return shdperr.New(400, shdperr.BadRequest, "unexpected system operation in fyve content")
		}
		runes = append(runes, op.Char)
	}
	r.Content = string(runes)
	return nil
}

func (r *FullFyveResponseDecoder) BuildResponses(_ []arg.Value) ([]frame.PayloadEncoder, error) {
	return nil, nil
}
