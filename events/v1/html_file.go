package v1

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/fyve"
	"github.com/coregx/shdp/registry"
	"github.com/coregx/shdp/shdperr"
)

// HtmlFileResponse serializes an HTML document as a fyve operation
// stream the client reconstructs into a tree.
type HtmlFileResponse struct {
	path string
}

// NewHtmlFileResponse builds the 0x0001 response for the HTML file at
// path.
func NewHtmlFileResponse(path string) *HtmlFileResponse {
	return &HtmlFileResponse{path: path}
}

func (r *HtmlFileResponse) EventID() uint16 { return EventHtmlFileResponse }

// Encode writes the basename terminated by 0x00, then the parsed
// document as nested StartOfTag/StartOfAttributes/StartOfData/EndOfData
// operations with Utf8Chain-wrapped text.
func (r *HtmlFileResponse) Encode() (*bitio.Encoder, error) {
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

	z := html.NewTokenizer(bytes.NewReader(content))
	if err := encodeHTMLNodes(enc, z, "", false); err != nil {
		return nil, err
	}
	return enc, nil
}

// encodeHTMLNodes consumes tokens from z, emitting one fyve operation
// sequence per sibling, until EOF or an end tag matching closeTag
// (empty at the top level). inPre suppresses text emission, mirroring
// the source's rule that text under a <pre> parent is dropped.
func encodeHTMLNodes(enc *bitio.Encoder, z *html.Tokenizer, closeTag string, inPre bool) error {
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return nil
		case html.TextToken:
			if !inPre {
				if err := encodeTextNode(enc, string(z.Text())); err != nil {
					return err
				}
			}
		case html.CommentToken, html.DoctypeToken:
			// not part of the reconstructed tree.
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == closeTag {
				return nil
			}
			// Unbalanced close at this level; tolerate and keep reading,
			// matching a lenient streaming parser rather than failing the
			// whole frame over malformed markup.
		case html.StartTagToken, html.SelfClosingTagToken:
			tagName, hasAttr := z.TagName()
			name := string(tagName)

			if err := fyve.WriteSystem(enc, fyve.OpStartOfTag); err != nil {
				return err
			}
			if err := encodeFyveRun(enc, name); err != nil {
				return err
			}
			if hasAttr {
				if err := encodeAttributes(enc, z); err != nil {
					return err
				}
			}
			if err := fyve.WriteSystem(enc, fyve.OpStartOfData); err != nil {
				return err
			}
			if tt == html.StartTagToken {
				if err := encodeHTMLNodes(enc, z, name, name == "pre"); err != nil {
					return err
				}
			}
			if err := fyve.WriteSystem(enc, fyve.OpEndOfData); err != nil {
				return err
			}
		}
	}
}

func encodeAttributes(enc *bitio.Encoder, z *html.Tokenizer) error {
	if err := fyve.WriteSystem(enc, fyve.OpStartOfAttributes); err != nil {
		return err
	}
	for {
		key, val, more := z.TagAttr()
		if err := encodeFyveRun(enc, string(key)); err != nil {
			return err
		}
		if err := encodeTextNode(enc, string(val)); err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func encodeFyveRun(enc *bitio.Encoder, s string) error {
	for _, ch := range s {
		if err := fyve.WriteChar(enc, ch); err != nil {
			return err
		}
	}
	return nil
}

// encodeTextNode drops whitespace-only text, otherwise writes a
// Utf8Chain marker, a 15-bit length, then the raw bytes.
func encodeTextNode(enc *bitio.Encoder, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if err := fyve.WriteSystem(enc, fyve.OpUtf8Chain); err != nil {
		return err
	}
	b := []byte(text)
	if err := enc.AppendUint(uint32(len(b)), 15); err != nil {
		return err
	}
	return enc.AppendBytes(b)
}

// HtmlContent is one child of a reconstructed HtmlTag: either Text is
// set, or Tag is, never both.
type HtmlContent struct {
	Text string
	Tag  *HtmlTag
}

// HtmlTag is a reconstructed element: a name, its attributes, and its
// ordered content.
type HtmlTag struct {
	Name       string
	Attributes map[string]string
	Content    []HtmlContent
}

// HtmlFileResponseDecoder is the client-side decoder for event 0x0001.
type HtmlFileResponseDecoder struct {
	dec *bitio.Decoder

	Name    string
	Content []HtmlContent
}

// NewHtmlFileResponseDecoder is the registry.Factory for event 0x0001.
func NewHtmlFileResponseDecoder(dec *bitio.Decoder) registry.RequestDecoder {
	return &HtmlFileResponseDecoder{dec: dec}
}

func (r *HtmlFileResponseDecoder) Decode() error {
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
	r.Name = string(nameBytes)

	root := &HtmlTag{Attributes: map[string]string{}}
	reader := fyve.NewReader(r.dec)
	if err := decodeHTMLNodes(reader, root); err != nil {
		return err
	}
	r.Content = root.Content
	return nil
}

func (r *HtmlFileResponseDecoder) BuildResponses(_ []arg.Value) ([]frame.PayloadEncoder, error) {
	return nil, nil
}

// decodeHTMLNodes runs the tree-reconstruction automaton of spec
// section 4.6 over reader, appending top-level nodes to root.Content
// and nested nodes to their open parent tag (tracked on an explicit
// stack) until the payload is exhausted.
func decodeHTMLNodes(reader *fyve.Reader, root *HtmlTag) error {
	stack := []*HtmlTag{root}

	for reader.Remaining() > 0 {
		op, err := reader.ReadOperation()
		if err != nil {
			return err
		}
		if op.Kind != fyve.KindSystem {
			return shdperr.New(400, shdperr.BadRequest, "unexpected character outside a tag")
		}
		top := stack[len(stack)-1]

		switch op.Op {
		case fyve.OpStartOfTag:
			name, next, err := readFyveRun(reader)
			if err != nil {
				return err
			}
			child := &HtmlTag{Name: name, Attributes: map[string]string{}}
			top.Content = append(top.Content, HtmlContent{Tag: child})
			stack = append(stack, child)

			switch next.Op {
			case fyve.OpStartOfAttributes:
				dataOp, err := decodeAttributes(reader, child)
				if err != nil {
					return err
				}
				if dataOp.Op != fyve.OpStartOfData {
					return shdperr.New(400, shdperr.BadRequest, "expected start-of-data after attributes")
				}
			case fyve.OpStartOfData:
				// no attributes
			default:
				return shdperr.New(400, shdperr.BadRequest, "expected attributes or data after tag name")
			}

		case fyve.OpUtf8Chain:
			text, err := readUtf8Chain(reader)
			if err != nil {
				return err
			}
			top.Content = append(top.Content, HtmlContent{Text: text})

		case fyve.OpEndOfData:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		default:
			return shdperr.New(400, shdperr.BadRequest, "unexpected operation in html content")
		}
	}
	return nil
}

// decodeAttributes reads name/value pairs until a non-Utf8Chain system
// operation is hit (expected to be StartOfData), which it returns to
// the caller.
func decodeAttributes(reader *fyve.Reader, tag *HtmlTag) (fyve.Operation, error) {
	for {
		name, op, err := readFyveRun(reader)
		if err != nil {
			return fyve.Operation{}, err
		}
		if op.Op != fyve.OpUtf8Chain {
			return op, nil
		}
		value, err := readUtf8Chain(reader)
		if err != nil {
			return fyve.Operation{}, err
		}
		tag.Attributes[name] = value
	}
}

// readFyveRun accumulates Character operations into a string until a
// System operation is encountered, which is returned alongside the run.
func readFyveRun(reader *fyve.Reader) (string, fyve.Operation, error) {
	var sb strings.Builder
	for {
		op, err := reader.ReadOperation()
		if err != nil {
			return "", fyve.Operation{}, err
		}
		if op.Kind == fyve.KindSystem {
			return sb.String(), op, nil
		}
		sb.WriteRune(op.Char)
	}
}

// readUtf8Chain reads the 15-bit length and raw bytes following an
// already-consumed Utf8Chain system operation.
func readUtf8Chain(reader *fyve.Reader) (string, error) {
	dec := reader.Decoder()
	length, err := dec.ReadUint(15)
	if err != nil {
		return "", err
	}
	b, err := dec.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
