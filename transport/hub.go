package transport

import (
	"sync"

	"github.com/coregx/shdp/bitio"
	v1 "github.com/coregx/shdp/events/v1"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/internal/shdplog"
	"github.com/coregx/shdp/registry"
	"github.com/coregx/shdp/shdperr"
)

// Peer is a connected endpoint a Hub can serve: the frame.ByteStream
// contract plus the "ip:port" identity used as its key in the
// connection table. transport.Conn implements it over raw TCP;
// websocket.Conn implements it over an upgraded WebSocket.
type Peer interface {
	frame.ByteStream
	Addr() string
}

// Hub owns the connection table and runs one dispatch loop per
// registered connection. Any Peer can register: transport.Conn for raw
// TCP, websocket.Conn for an upgraded WebSocket.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]Peer
	closed  bool

	wg sync.WaitGroup
}

// NewHub returns an empty, ready-to-use Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]Peer)}
}

// ClientCount reports how many connections are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve registers conn and runs its dispatch loop until the connection
// errors or is closed. It blocks; call it in its own goroutine per
// accepted connection.
func (h *Hub) Serve(conn Peer) {
	if !h.register(conn) {
		_ = conn.Close()
		return
	}

	h.wg.Add(1)
	defer h.wg.Done()
	defer h.unregister(conn)

	for {
		header, payload, err := ReadFrame(conn, bitio.Msb0)
		if err != nil {
			return
		}

		key := registry.Key{Version: header.Version.Byte(), Event: header.Event}
		responses, dispatchErr := registry.Incoming.Dispatch(key, payload)
		if dispatchErr != nil {
			h.respondError(conn, header.Version, dispatchErr)
			return
		}

		if !h.sendAll(conn, header.Version, responses) {
			return
		}
	}
}

// sendAll encodes and writes each response in order, stopping and
// reporting an error response on the first failure: responses produced
// by one request are emitted in the order returned by the listener.
func (h *Hub) sendAll(conn Peer, version frame.Version, responses []frame.PayloadEncoder) bool {
	for _, resp := range responses {
		wire, err := frame.Encode(version, resp)
		if err != nil {
			h.respondError(conn, version, err)
			return false
		}
		if err := conn.Write(wire); err != nil {
			shdplog.Log.Warningf("shdp: write failed for %s: %v", conn.Addr(), err)
			return false
		}
	}
	return true
}

// respondError answers a still-open peer with a 0x0002 ErrorResponse
// and then stops serving the connection. A failure while emitting the
// error itself is logged and the connection is left to close.
func (h *Hub) respondError(conn Peer, version frame.Version, err error) {
	sErr, ok := err.(*shdperr.Error)
	if !ok {
		sErr = shdperr.Wrap(err)
	}

	wire, encErr := frame.Encode(version, v1.NewErrorResponse(sErr))
	if encErr != nil {
		shdplog.Log.Errorf("shdp: failed to build error response for %s: %v", conn.Addr(), encErr)
		return
	}
	if err := conn.Write(wire); err != nil {
		shdplog.Log.Errorf("shdp: failed to send error response to %s: %v", conn.Addr(), err)
	}
}

func (h *Hub) register(conn Peer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[conn.Addr()] = conn
	return true
}

func (h *Hub) unregister(conn Peer) {
	h.mu.Lock()
	delete(h.clients, conn.Addr())
	h.mu.Unlock()
	_ = conn.Close()
}

// Close stops accepting dispatch loops and closes every registered
// connection. Safe to call once; a second call is a no-op.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	clients := make([]Peer, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[string]Peer)
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.Close()
	}
	h.wg.Wait()
	return nil
}
