package v1

import (
	"sync"

	"github.com/coregx/shdp/arg"
	"github.com/coregx/shdp/registry"
)

// protocolVersion is the version byte every codec in this package is
// registered under.
const protocolVersion uint8 = 1

var registerOnce sync.Once

// Register seeds the process-wide registry tables with the version-1
// event set, exactly once per process regardless of how many times it
// is called.
//
// It wires the two request codecs (ComponentNeedsRequest,
// InteractionRequest) into registry.Incoming, where a caller still
// must register a listener per event before Dispatch can route to it;
// and the five response codecs into registry.Outgoing with a
// pass-through listener, since those are terminal decodes with no
// further responses to build.
func Register() {
	registerOnce.Do(registerAll)
}

func registerAll() {
	registry.Incoming.AddEvent(registry.Key{Version: protocolVersion, Event: EventComponentNeedsRequest},
		NewComponentNeedsRequestDecoder)
	registry.Incoming.AddEvent(registry.Key{Version: protocolVersion, Event: EventInteractionRequest},
		NewInteractionRequestDecoder)

	terminal := []struct {
		event   uint16
		factory registry.Factory
	}{
		{EventHtmlFileResponse, NewHtmlFileResponseDecoder},
		{EventErrorResponse, NewErrorResponseDecoder},
		{EventComponentNeedsResponse, NewComponentNeedsResponseDecoder},
		{EventFullFyveResponse, NewFullFyveResponseDecoder},
		{EventInteractionResponse, NewInteractionResponseDecoder},
	}
	for _, t := range terminal {
		key := registry.Key{Version: protocolVersion, Event: t.event}
		registry.Outgoing.AddEvent(key, t.factory)
		registry.Outgoing.AddListener(key, noResponseListener)
	}
}

func noResponseListener(_ registry.RequestDecoder) ([]arg.Value, error) {
	return nil, nil
}
