package registry

import (
	"testing"

	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/frame"
)

type fakeDecoder struct {
	decoded  bool
	decodeErr error
	built    []frame.PayloadEncoder
}

func (d *fakeDecoder) Decode() error {
	d.decoded = true
	return d.decodeErr
}

func (d *fakeDecoder) BuildResponses(args []arg.Value) ([]frame.PayloadEncoder, error) {
	return d.built, nil
}

func TestTable_Dispatch_MissingFactory(t *testing.T) {
	table := NewTable(bitio.Msb0)
	dec := bitio.NewDecoder(nil, bitio.Msb0)
	if _, err := table.Dispatch(Key{Version: 1, Event: 0x0000}, dec); err == nil {
		t.Error("Dispatch with no registered factory should fail with NotFound")
	}
}

func TestTable_Dispatch_MissingListener(t *testing.T) {
	table := NewTable(bitio.Msb0)
	key := Key{Version: 1, Event: 0x0001}
	table.AddEvent(key, func(dec *bitio.Decoder) RequestDecoder {
		return &fakeDecoder{}
	})

	dec := bitio.NewDecoder(nil, bitio.Msb0)
	if _, err := table.Dispatch(key, dec); err == nil {
		t.Error("Dispatch with a factory but no listener should fail with NotFound")
	}
}

func TestTable_Dispatch_FullPipeline(t *testing.T) {
	table := NewTable(bitio.Msb0)
	key := Key{Version: 1, Event: 0x0002}

	var built fakeDecoder
	table.AddEvent(key, func(dec *bitio.Decoder) RequestDecoder {
		return &built
	})
	table.AddListener(key, func(req RequestDecoder) ([]arg.Value, error) {
		return []arg.Value{arg.Text("ok")}, nil
	})

	dec := bitio.NewDecoder(nil, bitio.Msb0)
	if _, err := table.Dispatch(key, dec); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !built.decoded {
		t.Error("Dispatch should have called Decode on the constructed RequestDecoder")
	}

	// A second dispatch exercises the LRU front-cache path; behavior
	// must be identical to the first, uncached call.
	if _, err := table.Dispatch(key, dec); err != nil {
		t.Fatalf("second Dispatch (cached) failed: %v", err)
	}
}

func TestTable_Dispatch_DecodeError(t *testing.T) {
	table := NewTable(bitio.Msb0)
	key := Key{Version: 1, Event: 0x0003}
	failing := &fakeDecoder{decodeErr: errBoom{}}
	table.AddEvent(key, func(dec *bitio.Decoder) RequestDecoder { return failing })
	table.AddListener(key, func(req RequestDecoder) ([]arg.Value, error) { return nil, nil })

	dec := bitio.NewDecoder(nil, bitio.Msb0)
	if _, err := table.Dispatch(key, dec); err == nil {
		t.Error("Dispatch should propagate a Decode error without calling the listener")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestTable_Order(t *testing.T) {
	if NewTable(bitio.Msb0).Order() != bitio.Msb0 {
		t.Error("Order() should report the order passed to NewTable")
	}
	if NewTable(bitio.Lsb0).Order() != bitio.Lsb0 {
		t.Error("Order() should report the order passed to NewTable")
	}
}
