package v1

import (
	"encoding/json/jsontext"
	"os"
	"path/filepath"
	"testing"

	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/shdperr"
)

func TestComponentNeedsRequest_Decode(t *testing.T) {
	enc := bitio.NewEncoder(bitio.Msb0)
	_ = enc.AppendBytes([]byte("my-component"))
	dec := bitio.NewDecoder(enc.Finalize(), bitio.Msb0)

	req := &ComponentNeedsRequest{dec: dec}
	if err := req.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if req.RequestedComponentName != "my-component" {
		t.Errorf("RequestedComponentName = %q, want \"my-component\"", req.RequestedComponentName)
	}
}

func TestComponentNeedsRequest_Decode_RejectsEmpty(t *testing.T) {
	dec := bitio.NewDecoder(nil, bitio.Msb0)
	req := &ComponentNeedsRequest{dec: dec}
	if err := req.Decode(); err == nil {
		t.Error("Decode with an empty component name should fail")
	}
}

func TestComponentNeedsRequest_BuildResponses(t *testing.T) {
	req := &ComponentNeedsRequest{RequestedComponentName: "widget"}
	args := []arg.Value{
		arg.OptionTextValue(nil),
		arg.VecTextValue([]string{"a/b/page.html", "c/d/data.txt"}),
	}
	responses, err := req.BuildResponses(args)
	if err != nil {
		t.Fatalf("BuildResponses failed: %v", err)
	}
	if len(responses) != 3 {
		t.Fatalf("len(responses) = %d, want 3 (head + one per file)", len(responses))
	}
	if responses[0].EventID() != EventComponentNeedsResponse {
		t.Errorf("responses[0].EventID() = %#x, want ComponentNeedsResponse", responses[0].EventID())
	}
	if responses[1].EventID() != EventHtmlFileResponse {
		t.Errorf("responses[1].EventID() = %#x, want HtmlFileResponse for a .html path", responses[1].EventID())
	}
	if responses[2].EventID() != EventFullFyveResponse {
		t.Errorf("responses[2].EventID() = %#x, want FullFyveResponse for a non-.html path", responses[2].EventID())
	}
}

func TestComponentNeedsResponse_RoundTrip_NoTitle(t *testing.T) {
	resp := NewComponentNeedsResponse("widget", nil, []string{"page.html", "data.fy"})
	enc, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	dec := bitio.NewDecoder(enc.Finalize(), bitio.Lsb0)

	rd := NewComponentNeedsResponseDecoder(dec)
	if err := rd.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := rd.(*ComponentNeedsResponseDecoder)
	if got.ComponentName != "widget" {
		t.Errorf("ComponentName = %q, want \"widget\"", got.ComponentName)
	}
	if len(got.Files) != 2 || got.Files[0] != "page.html" || got.Files[1] != "data.fy" {
		t.Errorf("Files = %v, want [page.html data.fy]", got.Files)
	}
}

func TestErrorResponse_RoundTrip(t *testing.T) {
	src := shdperr.New(404, shdperr.NotFound, "event not found")
	resp := NewErrorResponse(src)
	enc, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	dec := bitio.NewDecoder(enc.Finalize(), bitio.Lsb0)

	rd := NewErrorResponseDecoder(dec)
	if err := rd.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := rd.(*ErrorResponseDecoder)
	if got.Code != 404 {
		t.Errorf("Code = %d, want 404", got.Code)
	}
	if got.Message != "event not found" {
		t.Errorf("Message = %q, want \"event not found\"", got.Message)
	}
}

func TestFullFyveResponse_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.fy")
	if err := os.WriteFile(path, []byte("shdp"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	resp := NewFullFyveResponse(path)
	enc, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Trim Finalize's byte padding: frame.Decode hands decoders exactly
	// data_size bits, and this decoder reads until no bits remain.
	dec, err := bitio.NewDecoder(enc.Finalize(), bitio.Lsb0).ReadSlice(0, enc.Len())
	if err != nil {
		t.Fatalf("ReadSlice failed: %v", err)
	}

	rd := NewFullFyveResponseDecoder(dec)
	if err := rd.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := rd.(*FullFyveResponseDecoder)
	if got.Filename != "data.fy" {
		t.Errorf("Filename = %q, want \"data.fy\"", got.Filename)
	}
	if got.Content != "shdp" {
		t.Errorf("Content = %q, want \"shdp\"", got.Content)
	}
}

func TestFullFyveResponse_MissingFile(t *testing.T) {
	resp := NewFullFyveResponse(filepath.Join(t.TempDir(), "missing.fy"))
	if _, err := resp.Encode(); err == nil {
		t.Error("Encode over a missing file should fail")
	}
}

func TestHtmlFileResponse_RoundTrip_SingleTextChild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("<html>Test</html>"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	resp := NewHtmlFileResponse(path)
	enc, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Trim Finalize's byte padding: frame.Decode hands decoders exactly
	// data_size bits, and this decoder reads until no bits remain.
	dec, err := bitio.NewDecoder(enc.Finalize(), bitio.Lsb0).ReadSlice(0, enc.Len())
	if err != nil {
		t.Fatalf("ReadSlice failed: %v", err)
	}

	rd := NewHtmlFileResponseDecoder(dec)
	if err := rd.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := rd.(*HtmlFileResponseDecoder)
	if got.Name != "page.html" {
		t.Errorf("Name = %q, want \"page.html\"", got.Name)
	}
	if len(got.Content) != 1 || got.Content[0].Tag == nil {
		t.Fatalf("Content = %+v, want exactly one Tag child", got.Content)
	}
	root := got.Content[0].Tag
	if root.Name != "html" {
		t.Errorf("root.Name = %q, want \"html\"", root.Name)
	}
	if len(root.Attributes) != 0 {
		t.Errorf("root.Attributes = %v, want none", root.Attributes)
	}
	if len(root.Content) != 1 || root.Content[0].Text != "Test" {
		t.Errorf("root.Content = %+v, want exactly one Text child \"Test\"", root.Content)
	}
}

func TestHtmlFileResponse_RoundTrip_WithAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "div.html")
	html := `<div class="main"><span>hi</span></div>`
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	resp := NewHtmlFileResponse(path)
	enc, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Trim Finalize's byte padding: frame.Decode hands decoders exactly
	// data_size bits, and this decoder reads until no bits remain.
	dec, err := bitio.NewDecoder(enc.Finalize(), bitio.Lsb0).ReadSlice(0, enc.Len())
	if err != nil {
		t.Fatalf("ReadSlice failed: %v", err)
	}

	rd := NewHtmlFileResponseDecoder(dec)
	if err := rd.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := rd.(*HtmlFileResponseDecoder)
	if len(got.Content) != 1 || got.Content[0].Tag == nil {
		t.Fatalf("Content = %+v, want exactly one Tag child", got.Content)
	}
	div := got.Content[0].Tag
	if div.Name != "div" || div.Attributes["class"] != "main" {
		t.Errorf("div = %+v, want Name=div Attributes[class]=main", div)
	}
	if len(div.Content) != 1 || div.Content[0].Tag == nil || div.Content[0].Tag.Name != "span" {
		t.Fatalf("div.Content = %+v, want exactly one span child", div.Content)
	}
	span := div.Content[0].Tag
	if len(span.Content) != 1 || span.Content[0].Text != "hi" {
		t.Errorf("span.Content = %+v, want exactly one Text child \"hi\"", span.Content)
	}
}

func TestInteractionRequest_RoundTrip(t *testing.T) {
	token := "tok"
	objectID := int32(7)
	params := jsontext.Value(`{"x":1}`)
	req := NewInteractionRequestEncoder(1234, "onClick", "button", &token, &objectID, params)

	enc, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	dec := bitio.NewDecoder(enc.Finalize(), bitio.Msb0)

	decoded := &InteractionRequest{dec: dec}
	if err := decoded.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.RequestID != 1234 {
		t.Errorf("RequestID = %d, want 1234", decoded.RequestID)
	}
	if decoded.FunctionName != "onClick" || decoded.ParentName != "button" {
		t.Errorf("FunctionName/ParentName = %q/%q", decoded.FunctionName, decoded.ParentName)
	}
	if decoded.Token == nil || *decoded.Token != "tok" {
		t.Errorf("Token = %v, want \"tok\"", decoded.Token)
	}
	if decoded.ObjectID == nil || *decoded.ObjectID != 7 {
		t.Errorf("ObjectID = %v, want 7", decoded.ObjectID)
	}
	if string(decoded.Params) != `{"x":1}` {
		t.Errorf("Params = %s, want {\"x\":1}", decoded.Params)
	}
}

func TestInteractionRequest_BuildResponses(t *testing.T) {
	req := &InteractionRequest{RequestID: 42}
	v, err := arg.OptionValueOf(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("OptionValueOf failed: %v", err)
	}
	responses, err := req.BuildResponses([]arg.Value{v})
	if err != nil {
		t.Fatalf("BuildResponses failed: %v", err)
	}
	if len(responses) != 1 || responses[0].EventID() != EventInteractionResponse {
		t.Fatalf("responses = %+v, want a single InteractionResponse", responses)
	}
}

func TestInteractionResponse_ParseFailureMapsToNull(t *testing.T) {
	resp := NewInteractionResponse(9, jsontext.Value("not json"))
	enc, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	dec := bitio.NewDecoder(enc.Finalize(), bitio.Lsb0)

	rd := NewInteractionResponseDecoder(dec)
	if err := rd.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := rd.(*InteractionResponseDecoder)
	if got.RequestID != 9 {
		t.Errorf("RequestID = %d, want 9", got.RequestID)
	}
	if string(got.Response) != "null" {
		t.Errorf("Response = %s, want \"null\" (parse failure)", got.Response)
	}
}

func TestRegister_IsIdempotent(t *testing.T) {
	Register()
	Register() // must not panic or re-register differently
}
