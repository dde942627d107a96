package frame

import (
	"sync"

	"github.com/coregx/shdp/bitio"
)

// Validator inspects a frame's payload, independently of whatever a
// registry factory will later do with it, and can reject a shape that
// the header's version/event/data_size fields alone don't rule out.
// Decode runs at most one Validator per version, defaulting to a no-op
// when none is registered - version 1 ships with none.
type Validator func(payload *bitio.Decoder) error

var (
	validatorsMu sync.RWMutex
	validators   = map[Version]Validator{}
)

// RegisterValidator installs fn as the hook Decode runs for version v.
// A later call for the same version replaces the earlier hook.
func RegisterValidator(v Version, fn Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	validators[v] = fn
}

func validatorFor(v Version) (Validator, bool) {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	fn, ok := validators[v]
	return fn, ok
}
