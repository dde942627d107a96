package websocket

import (
	"bufio"
	"bytes"
	"testing"
)

func roundTrip(t *testing.T, f *frame) *frame {
	t.Helper()
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := writeFrame(w, f); err != nil {
		t.Fatalf("writeFrame failed: %v", err)
	}
	got, err := readFrame(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("readFrame failed: %v", err)
	}
	return got
}

func TestFrame_RoundTrip_Unmasked(t *testing.T) {
	payload := []byte("shdp frame bytes")
	got := roundTrip(t, &frame{fin: true, opcode: opBinary, payload: append([]byte(nil), payload...)})
	if !got.fin || got.opcode != opBinary || got.masked {
		t.Errorf("frame = %+v, want fin binary unmasked", got)
	}
	if !bytes.Equal(got.payload, payload) {
		t.Errorf("payload = %q, want %q", got.payload, payload)
	}
}

func TestFrame_RoundTrip_Masked(t *testing.T) {
	payload := []byte("masked payload")
	f := &frame{
		fin:     true,
		opcode:  opBinary,
		masked:  true,
		mask:    [4]byte{0xA1, 0xB2, 0xC3, 0xD4},
		payload: append([]byte(nil), payload...),
	}
	got := roundTrip(t, f)
	if !got.masked {
		t.Error("masked bit lost in round trip")
	}
	if !bytes.Equal(got.payload, payload) {
		t.Errorf("payload = %q, want %q (unmasked on read)", got.payload, payload)
	}
}

func TestFrame_RoundTrip_ExtendedLengths(t *testing.T) {
	// Payloads at the boundaries of the length ladder: the largest 7-bit
	// length, the smallest and largest 16-bit lengths, and the smallest
	// 64-bit length.
	for _, size := range []int{125, 126, 0xFFFF, 0x10000} {
		payload := bytes.Repeat([]byte{0x5A}, size)
		got := roundTrip(t, &frame{fin: true, opcode: opBinary, payload: append([]byte(nil), payload...)})
		if len(got.payload) != size {
			t.Errorf("len(payload) = %d, want %d", len(got.payload), size)
		}
	}
}

func TestReadFrame_RejectsReservedBits(t *testing.T) {
	data := []byte{0x80 | 0x40 | opBinary, 0x00}
	if _, err := readFrame(bufio.NewReader(bytes.NewReader(data))); err != ErrReservedBits {
		t.Errorf("err = %v, want ErrReservedBits", err)
	}
}

func TestReadFrame_RejectsInvalidOpcode(t *testing.T) {
	data := []byte{0x80 | 0x3, 0x00}
	if _, err := readFrame(bufio.NewReader(bytes.NewReader(data))); err != ErrInvalidOpcode {
		t.Errorf("err = %v, want ErrInvalidOpcode", err)
	}
}

func TestReadFrame_RejectsFragmentedControl(t *testing.T) {
	data := []byte{opPing, 0x00} // FIN clear on a control frame
	if _, err := readFrame(bufio.NewReader(bytes.NewReader(data))); err != ErrFragmentedControl {
		t.Errorf("err = %v, want ErrFragmentedControl", err)
	}
}

func TestReadFrame_RejectsLongControl(t *testing.T) {
	data := []byte{0x80 | opPing, payloadLen16Bit, 0x00, 0x80} // 128-byte ping
	if _, err := readFrame(bufio.NewReader(bytes.NewReader(data))); err != ErrControlTooLong {
		t.Errorf("err = %v, want ErrControlTooLong", err)
	}
}

func TestMaskBytes_IsInvolution(t *testing.T) {
	mask := [4]byte{0xDE, 0xAD, 0xBE, 0xEF}
	payload := []byte("involution check")
	original := append([]byte(nil), payload...)
	maskBytes(mask, payload)
	if bytes.Equal(payload, original) {
		t.Fatal("maskBytes changed nothing")
	}
	maskBytes(mask, payload)
	if !bytes.Equal(payload, original) {
		t.Error("masking twice should restore the original payload")
	}
}
