package v1

import (
	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/registry"
	"github.com/coregx/shdp/shdperr"
)

// ErrorResponse carries a failed operation's code and message back to
// the peer. Transport adapters answer a still-open peer with one of
// these whenever dispatch or encoding fails.
type ErrorResponse struct {
	code    uint16
	message string
}

// NewErrorResponse builds an ErrorResponse from an SHDP error. Codes
// above 65535 are truncated to fit the wire's 16-bit field; none of
// this module's own error codes exceed that range.
func NewErrorResponse(err *shdperr.Error) *ErrorResponse {
	return &ErrorResponse{code: uint16(err.Code), message: err.Message}
}

func (r *ErrorResponse) EventID() uint16 { return EventErrorResponse }

// Encode writes a 16-bit code, an 8-bit zero separator, then the
// message's UTF-8 bytes.
func (r *ErrorResponse) Encode() (*bitio.Encoder, error) {
	enc := bitio.NewEncoder(bitio.Lsb0)
	if err := enc.AppendUint(uint32(r.code), 16); err != nil {
		return nil, err
	}
	if err := enc.AppendUint(0, 8); err != nil {
		return nil, err
	}
	if err := enc.AppendBytes([]byte(r.message)); err != nil {
		return nil, err
	}
	return enc, nil
}

// ErrorResponseDecoder is the client-side decoder for event 0x0002.
type ErrorResponseDecoder struct {
	dec *bitio.Decoder

	Code    uint16
	Message string
}

// NewErrorResponseDecoder is the registry.Factory for event 0x0002.
func NewErrorResponseDecoder(dec *bitio.Decoder) registry.RequestDecoder {
	return &ErrorResponseDecoder{dec: dec}
}

func (r *ErrorResponseDecoder) Decode() error {
	code, err := r.dec.ReadUint(16)
	if err != nil {
		return err
	}
	if _, err := r.dec.ReadUint(8); err != nil { // separator
		return err
	}
	message, err := readAllText(r.dec)
	if err != nil {
		return err
	}
	r.Code = uint16(code)
	r.Message = message
	return nil
}

func (r *ErrorResponseDecoder) BuildResponses(_ []arg.Value) ([]frame.PayloadEncoder, error) {
	return nil, nil
}
