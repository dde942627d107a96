package v1

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"strconv"
	"strings"

	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/registry"
	"github.com/coregx/shdp/shdperr"
)

// InteractionRequest decodes an RPC-style call: a request id, a
// function and parent component name, and three optional fields
// (token, object id, JSON params).
type InteractionRequest struct {
	dec *bitio.Decoder

	RequestID    uint64
	FunctionName string
	ParentName   string
	Token        *string
	ObjectID     *int32
	Params       jsontext.Value
}

// NewInteractionRequestDecoder is the registry.Factory for event 0x0005.
func NewInteractionRequestDecoder(dec *bitio.Decoder) registry.RequestDecoder {
	return &InteractionRequest{dec: dec}
}

// Decode reads the 64-bit request id as two 32-bit halves, then splits
// the remainder on 0x00 into exactly five fields: function name,
// parent name, token, object id, params. Empty fields mean absent;
// function and parent name must be non-empty.
func (r *InteractionRequest) Decode() error {
	upper, err := r.dec.ReadUint(32)
	if err != nil {
		return err
	}
	lower, err := r.dec.ReadUint(32)
	if err != nil {
		return err
	}
	r.RequestID = uint64(upper)<<32 | uint64(lower)

	rest, err := readAllText(r.dec)
	if err != nil {
		return err
	}
	fields := strings.Split(rest, "\x00")
	if len(fields) != 5 {
		return shdperr.New(400, shdperr.BadRequest, "interaction request must split into exactly five fields")
	}

	functionName, parentName, token, objectID, params := fields[0], fields[1], fields[2], fields[3], fields[4]
	if functionName == "" || parentName == "" {
		return shdperr.New(400, shdperr.BadRequest, "function name and parent name must not be empty")
	}
	r.FunctionName = functionName
	r.ParentName = parentName

	if token != "" {
		r.Token = &token
	}
	if objectID != "" {
		id, err := strconv.ParseInt(objectID, 10, 32)
		if err != nil {
			return shdperr.New(400, shdperr.BadRequest, "invalid object id: "+objectID)
		}
		id32 := int32(id)
		r.ObjectID = &id32
	}
	if params != "" {
		r.Params = jsontext.Value(params)
	}
	return nil
}

// BuildResponses expects args = [OptionValue response] from the
// listener registered at (1, 0x0005), and wraps it as the matching
// InteractionResponse.
func (r *InteractionRequest) BuildResponses(args []arg.Value) ([]frame.PayloadEncoder, error) {
	if len(args) < 1 {
		return nil, shdperr.New(500, shdperr.InternalServerError,
			"listener for 0x0005 must return [response]")
	}
	response, err := args[0].AsOptionValue()
	if err != nil {
		return nil, err
	}
	return []frame.PayloadEncoder{NewInteractionResponse(r.RequestID, response)}, nil
}

// InteractionRequestEncoder is the client-side builder for event
// 0x0005, used by callers that issue interaction requests (e.g.
// cmd/shdpctl's interact subcommand).
type InteractionRequestEncoder struct {
	RequestID    uint64
	FunctionName string
	ParentName   string
	Token        *string
	ObjectID     *int32
	Params       jsontext.Value
}

// NewInteractionRequestEncoder builds an encoder for an outbound
// interaction request.
func NewInteractionRequestEncoder(requestID uint64, functionName, parentName string, token *string, objectID *int32, params jsontext.Value) *InteractionRequestEncoder {
	return &InteractionRequestEncoder{
		RequestID:    requestID,
		FunctionName: functionName,
		ParentName:   parentName,
		Token:        token,
		ObjectID:     objectID,
		Params:       params,
	}
}

func (r *InteractionRequestEncoder) EventID() uint16 { return EventInteractionRequest }

// Encode packs the 64-bit request id as two 32-bit halves, then
// function name, parent name, token, object id and params joined by
// 0x00 separators. Client requests are always encoded in Msb0.
func (r *InteractionRequestEncoder) Encode() (*bitio.Encoder, error) {
	enc := bitio.NewEncoder(bitio.Msb0)
	if err := enc.AppendUint(uint32(r.RequestID>>32), 32); err != nil {
		return nil, err
	}
	if err := enc.AppendUint(uint32(r.RequestID), 32); err != nil {
		return nil, err
	}

	token := ""
	if r.Token != nil {
		token = *r.Token
	}
	objectID := ""
	if r.ObjectID != nil {
		objectID = strconv.FormatInt(int64(*r.ObjectID), 10)
	}
	params := ""
	if len(r.Params) > 0 {
		params = string(r.Params)
	}

	fields := strings.Join([]string{r.FunctionName, r.ParentName, token, objectID, params}, "\x00")
	if err := enc.AppendBytes([]byte(fields)); err != nil {
		return nil, err
	}
	return enc, nil
}

// InteractionResponse carries the result of an interaction request
// back to the client.
type InteractionResponse struct {
	requestID uint64
	response  jsontext.Value
}

// NewInteractionResponse builds the 0x0006 response. A nil/empty
// response omits the JSON body entirely.
func NewInteractionResponse(requestID uint64, response jsontext.Value) *InteractionResponse {
	return &InteractionResponse{requestID: requestID, response: response}
}

func (r *InteractionResponse) EventID() uint16 { return EventInteractionResponse }

func (r *InteractionResponse) Encode() (*bitio.Encoder, error) {
	enc := bitio.NewEncoder(bitio.Lsb0)
	if err := enc.AppendUint(uint32(r.requestID>>32), 32); err != nil {
		return nil, err
	}
	if err := enc.AppendUint(uint32(r.requestID), 32); err != nil {
		return nil, err
	}
	if len(r.response) > 0 {
		if err := enc.AppendBytes(r.response); err != nil {
			return nil, err
		}
	}
	return enc, nil
}

// InteractionResponseDecoder is the client-side decoder for event
// 0x0006.
type InteractionResponseDecoder struct {
	dec *bitio.Decoder

	RequestID uint64
	Response  jsontext.Value
}

// NewInteractionResponseDecoder is the registry.Factory for event
// 0x0006.
func NewInteractionResponseDecoder(dec *bitio.Decoder) registry.RequestDecoder {
	return &InteractionResponseDecoder{dec: dec}
}

// Decode reads the id, then parses all remaining bytes as JSON; a
// parse failure maps to a JSON null value rather than an error.
func (r *InteractionResponseDecoder) Decode() error {
	upper, err := r.dec.ReadUint(32)
	if err != nil {
		return err
	}
	lower, err := r.dec.ReadUint(32)
	if err != nil {
		return err
	}
	r.RequestID = uint64(upper)<<32 | uint64(lower)

	raw, err := r.dec.ReadBytes(r.dec.Remaining() / 8)
	if err != nil {
		return err
	}
	var probe any
	if len(raw) == 0 || json.Unmarshal(raw, &probe) != nil {
		r.Response = jsontext.Value("null")
		return nil
	}
	r.Response = jsontext.Value(raw)
	return nil
}

func (r *InteractionResponseDecoder) BuildResponses(_ []arg.Value) ([]frame.PayloadEncoder, error) {
	return nil, nil
}
