// Package registry implements the process-wide event dispatch tables:
// two concurrent maps (one per bitio.Order) from (version, event id) to
// request-decoder factories and response-producing listeners.
//
// The locking discipline is an RWMutex over a plain map: readers on
// the hot dispatch path, writers only at startup/registration time.
package registry

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/bitio"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/internal/shdplog"
	"github.com/coregx/shdp/shdperr"
)

// Key identifies one entry in a Table: a protocol version and the
// 16-bit event id scoped to it.
type Key struct {
	Version uint8
	Event   uint16
}

// RequestDecoder is a stateful object that parses one event's payload
// and, once handed the listener's arguments, builds the response(s) to
// emit. Concrete event types in package events/v1 implement this.
type RequestDecoder interface {
	// Decode parses the payload bits supplied at construction time.
	Decode() error
	// BuildResponses constructs the response payload encoder(s) for
	// this request using the arguments the listener returned. The
	// decoder, not the registry, knows how to turn listener output
	// into concrete response objects.
	BuildResponses(args []arg.Value) ([]frame.PayloadEncoder, error)
}

// Factory constructs a RequestDecoder positioned at the start of a
// payload's bit decoder.
type Factory func(dec *bitio.Decoder) RequestDecoder

// Listener receives a fully-decoded RequestDecoder and returns the
// arguments used to build its response(s). Listeners never see a live
// transport; this indirection lets business logic be tested without
// one.
type Listener func(req RequestDecoder) ([]arg.Value, error)

// lookupCacheSize bounds the LRU front-cache over recently dispatched
// keys; hot paths in practice touch a handful of event ids.
const lookupCacheSize = 64

type cacheEntry struct {
	factory  Factory
	listener Listener
}

// Table is one bit-order's dual map of factories and listeners, guarded
// by a single RWMutex (reads dominate: one lookup per inbound frame).
type Table struct {
	order Order

	mu        sync.RWMutex
	factories map[Key]Factory
	listeners map[Key]Listener

	lookupCache *lru.Cache
}

// Order is a local alias for bitio.Order, kept distinct so callers
// reading registry.Table's signature are not forced to import bitio
// just to name the type in doc comments.
type Order = bitio.Order

// NewTable returns an empty Table for the given bit order.
func NewTable(order Order) *Table {
	cache, err := lru.New(lookupCacheSize)
	if err != nil {
		// lru.New only fails for a non-positive size; lookupCacheSize
		// is a positive constant, so this is unreachable in practice.
		panic(err)
	}
	return &Table{
		order:       order,
		factories:   make(map[Key]Factory),
		listeners:   make(map[Key]Listener),
		lookupCache: cache,
	}
}

// Order reports which bitio.Order this table's decoders/encoders
// operate in.
func (t *Table) Order() Order { return t.order }

// AddEvent registers (or replaces) the factory for key. Safe to call
// concurrently with lookups and other writers.
func (t *Table) AddEvent(key Key, f Factory) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.factories[key] = f
	t.lookupCache.Remove(key)
}

// AddListener registers (or replaces) the listener for key.
func (t *Table) AddListener(key Key, l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners[key] = l
	t.lookupCache.Remove(key)
}

// GetFactory returns the factory registered for key, if any.
func (t *Table) GetFactory(key Key) (Factory, bool) {
	if e, ok := t.lookupCache.Get(key); ok {
		entry := e.(cacheEntry)
		if entry.factory != nil {
			return entry.factory, true
		}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.factories[key]
	return f, ok
}

// GetListener returns the listener registered for key, if any.
func (t *Table) GetListener(key Key) (Listener, bool) {
	if e, ok := t.lookupCache.Get(key); ok {
		entry := e.(cacheEntry)
		if entry.listener != nil {
			return entry.listener, true
		}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	l, ok := t.listeners[key]
	return l, ok
}

// warmCache populates the LRU front-cache for key once both a factory
// and listener are known to exist, so the next Dispatch for the same
// key skips the RWMutex entirely.
func (t *Table) warmCache(key Key, f Factory, l Listener) {
	t.lookupCache.Add(key, cacheEntry{factory: f, listener: l})
}

// Dispatch routes one inbound frame payload through the full pipeline:
// factory lookup, decode, listener invocation, response construction.
// A missing factory or listener surfaces as NotFound (code 404).
func (t *Table) Dispatch(key Key, dec *bitio.Decoder) ([]frame.PayloadEncoder, error) {
	factory, ok := t.GetFactory(key)
	if !ok {
		shdplog.Log.Warningf("shdp: no factory registered for version=%d event=0x%04x", key.Version, key.Event)
		return nil, shdperr.New(404, shdperr.NotFound, "event not found")
	}

	rd := factory(dec)
	if err := rd.Decode(); err != nil {
		shdplog.Log.Warningf("shdp: decode failed for version=%d event=0x%04x: %v", key.Version, key.Event, err)
		return nil, err
	}

	listener, ok := t.GetListener(key)
	if !ok {
		shdplog.Log.Warningf("shdp: no listener registered for version=%d event=0x%04x", key.Version, key.Event)
		return nil, shdperr.New(404, shdperr.NotFound, "listener not found")
	}

	t.warmCache(key, factory, listener)

	args, err := listener(rd)
	if err != nil {
		return nil, err
	}
	return rd.BuildResponses(args)
}
