// Package v1 implements the version-1 event catalogue: the concrete
// request/response codecs for event ids 0x0000..0x0006 that ship as
// SHDP's default event set, registered into the process-wide registry
// tables by Register.
package v1

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/registry"
	"github.com/coregx/shdp/shdperr"
)

// Event ids for the version-1 catalogue.
const (
	EventComponentNeedsRequest  uint16 = 0x0000
	EventHtmlFileResponse       uint16 = 0x0001
	EventErrorResponse          uint16 = 0x0002
	EventComponentNeedsResponse uint16 = 0x0003
	EventFullFyveResponse       uint16 = 0x0004
	EventInteractionRequest     uint16 = 0x0005
	EventInteractionResponse    uint16 = 0x0006
)

// ComponentNeedsRequest decodes a client's request for the files a
// named component needs, and builds the response sequence once its
// listener supplies the component's title and file list.
type ComponentNeedsRequest struct {
	dec *bitio.Decoder

	RequestedComponentName string
}

// NewComponentNeedsRequestDecoder is the registry.Factory for event
// 0x0000.
func NewComponentNeedsRequestDecoder(dec *bitio.Decoder) registry.RequestDecoder {
	return &ComponentNeedsRequest{dec: dec}
}

// Decode reads the whole payload as UTF-8 bytes naming the component.
func (r *ComponentNeedsRequest) Decode() error {
	name, err := readAllText(r.dec)
	if err != nil {
		return err
	}
	if name == "" {
		return shdperr.New(400, shdperr.BadRequest, "component name must not be empty")
	}
	r.RequestedComponentName = name
	return nil
}

// BuildResponses expects args = [OptionText title, VecText file_paths].
// For each path it derives a basename and produces an HtmlFileResponse
// (".html" suffix) or FullFyveResponse (otherwise), prepending a
// ComponentNeedsResponse that carries the component name, title and
// basenames.
func (r *ComponentNeedsRequest) BuildResponses(args []arg.Value) ([]frame.PayloadEncoder, error) {
	if len(args) < 2 {
		return nil, shdperr.New(500, shdperr.InternalServerError,
			"listener for 0x0000 must return [title, file_paths]")
	}
	title, err := args[0].AsOptionText()
	if err != nil {
		return nil, err
	}
	filePaths, err := args[1].AsVecText()
	if err != nil {
		return nil, err
	}

	basenames := make([]string, 0, len(filePaths))
	responses := make([]frame.PayloadEncoder, 0, len(filePaths)+1)
	for _, p := range filePaths {
		base := filepath.Base(p)
		basenames = append(basenames, base)
		if strings.HasSuffix(base, ".html") {
			responses = append(responses, NewHtmlFileResponse(p))
		} else {
			responses = append(responses, NewFullFyveResponse(p))
		}
	}

	head := NewComponentNeedsResponse(r.RequestedComponentName, title, basenames)
	return append([]frame.PayloadEncoder{head}, responses...), nil
}

// ComponentNeedsResponse is the server's answer to a ComponentNeedsRequest.
type ComponentNeedsResponse struct {
	componentName string
	title         *string
	files         []string
}

// NewComponentNeedsResponse builds the 0x0003 response payload.
func NewComponentNeedsResponse(componentName string, title *string, files []string) *ComponentNeedsResponse {
	return &ComponentNeedsResponse{componentName: componentName, title: title, files: files}
}

func (r *ComponentNeedsResponse) EventID() uint16 { return EventComponentNeedsResponse }

// Encode writes component_name bytes; if title is present, a 0x00
// separator then title bytes; then a 0x00-separated file basename per
// file, or a single 0x01 byte when there are none.
func (r *ComponentNeedsResponse) Encode() (*bitio.Encoder, error) {
	enc := bitio.NewEncoder(bitio.Lsb0)
	if err := enc.AppendBytes([]byte(r.componentName)); err != nil {
		return nil, err
	}
	if r.title != nil {
		if err := enc.AppendUint(0, 8); err != nil {
			return nil, err
		}
		if err := enc.AppendBytes([]byte(*r.title)); err != nil {
			return nil, err
		}
	}
	if len(r.files) > 0 {
		for _, f := range r.files {
			if err := enc.AppendUint(0, 8); err != nil {
				return nil, err
			}
			if err := enc.AppendBytes([]byte(f)); err != nil {
				return nil, err
			}
		}
	} else {
		if err := enc.AppendUint(1, 8); err != nil {
			return nil, err
		}
	}
	return enc, nil
}

// ComponentNeedsResponseDecoder is the client-side (Outgoing table)
// decoder for event 0x0003. It has no further responses; it is a
// terminal leaf in the dispatch chain.
type ComponentNeedsResponseDecoder struct {
	dec *bitio.Decoder

	ComponentName string
	Title         *string
	Files         []string
}

// NewComponentNeedsResponseDecoder is the registry.Factory for event
// 0x0003 on the client side.
func NewComponentNeedsResponseDecoder(dec *bitio.Decoder) registry.RequestDecoder {
	return &ComponentNeedsResponseDecoder{dec: dec}
}

// Decode splits the payload on 0x00 separators; the first field is
// further split on 0x01 into (component_name, optional title).
func (r *ComponentNeedsResponseDecoder) Decode() error {
	raw, err := readAllText(r.dec)
	if err != nil {
		return err
	}
	parts := strings.Split(raw, "\x00")
	head := strings.SplitN(parts[0], "\x01", 2)
	r.ComponentName = head[0]
	if len(head) > 1 {
		title := head[1]
		r.Title = &title
	}
	r.Files = append([]string{}, parts[1:]...)
	return nil
}

func (r *ComponentNeedsResponseDecoder) BuildResponses(_ []arg.Value) ([]frame.PayloadEncoder, error) {
	return nil, nil
}

// readAllText reads the decoder's remaining whole bytes as UTF-8 text.
func readAllText(dec *bitio.Decoder) (string, error) {
	n := dec.Remaining() / 8
	b, err := dec.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", shdperr.New(400, shdperr.BadRequest, "invalid utf-8")
	}
	return string(b), nil
}
