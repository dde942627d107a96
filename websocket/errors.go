package websocket

import "errors"

// Handshake errors.
var (
	// ErrInvalidMethod is returned when the upgrade request is not a GET.
	ErrInvalidMethod = errors.New("websocket: handshake request must be a GET")

	// ErrMissingUpgrade is returned when the Upgrade header does not
	// name the websocket protocol.
	ErrMissingUpgrade = errors.New("websocket: missing Upgrade: websocket header")

	// ErrMissingConnection is returned when the Connection header does
	// not carry the upgrade token.
	ErrMissingConnection = errors.New("websocket: missing Connection: Upgrade header")

	// ErrInvalidVersion is returned for any Sec-WebSocket-Version other
	// than 13.
	ErrInvalidVersion = errors.New("websocket: unsupported Sec-WebSocket-Version")

	// ErrMissingKey is returned when the client sent no Sec-WebSocket-Key.
	ErrMissingKey = errors.New("websocket: missing Sec-WebSocket-Key header")

	// ErrHijackNotSupported is returned when the HTTP server's
	// ResponseWriter cannot surrender the underlying connection.
	ErrHijackNotSupported = errors.New("websocket: response writer does not support hijacking")

	// ErrBadHandshake is returned by Dial when the server's response is
	// not a valid 101 upgrade.
	ErrBadHandshake = errors.New("websocket: bad handshake response")
)

// Wire errors.
var (
	// ErrClosed describes a closed connection. No function in this
	// package returns it; operations on a closed Conn report the
	// underlying net.Conn's error.
	ErrClosed = errors.New("websocket: connection closed")

	// ErrReservedBits is returned when a frame sets RSV1/RSV2/RSV3; no
	// extension is ever negotiated for an SHDP stream.
	ErrReservedBits = errors.New("websocket: reserved bits set")

	// ErrInvalidOpcode is returned for opcodes outside RFC 6455's
	// defined set.
	ErrInvalidOpcode = errors.New("websocket: invalid opcode")

	// ErrUnexpectedText is returned when a peer sends a text message;
	// SHDP frames ride exclusively in binary messages.
	ErrUnexpectedText = errors.New("websocket: unexpected text message on an SHDP stream")

	// ErrUnmaskedClientFrame is returned when a client frame arrives
	// without masking (RFC 6455 requires client-to-server masking).
	ErrUnmaskedClientFrame = errors.New("websocket: client frame not masked")

	// ErrMaskedServerFrame is returned when a server frame arrives
	// masked.
	ErrMaskedServerFrame = errors.New("websocket: server frame masked")

	// ErrControlTooLong is returned for control frames with payloads
	// over 125 bytes.
	ErrControlTooLong = errors.New("websocket: control frame payload exceeds 125 bytes")

	// ErrFragmentedControl is returned for control frames with FIN
	// clear; control frames are never fragmented.
	ErrFragmentedControl = errors.New("websocket: fragmented control frame")

	// ErrFrameTooLarge is returned when a frame's declared payload
	// length exceeds the implementation limit.
	ErrFrameTooLarge = errors.New("websocket: frame payload too large")

	// ErrBadContinuation is returned when continuation frames arrive
	// out of sequence.
	ErrBadContinuation = errors.New("websocket: continuation frame out of sequence")
)
