package frame

import (
	"fmt"

	"github.com/coregx/shdp/shdperr"
)

// Version identifies a wire protocol version. Only V1 is defined; any
// other byte on the wire is rejected with shdperr.ErrUnknownVersion.
type Version uint8

// V1 is the only known SHDP version.
const V1 Version = 1

// known lists every wire byte this build accepts. Adding a version
// means adding its byte here and registering its event set in the
// registry package - nothing else in this file changes.
var known = map[Version]bool{V1: true}

// ParseVersion converts a wire version byte into a Version, or reports
// shdperr.ErrUnknownVersion if the byte names no known version.
func ParseVersion(b uint8) (Version, error) {
	v := Version(b)
	if !known[v] {
		return 0, shdperr.New(shdperr.CodeUnknownVersion, shdperr.UnknownVersion,
			fmt.Sprintf("unknown version: %d", b))
	}
	return v, nil
}

// Byte returns the wire representation of v.
func (v Version) Byte() uint8 { return uint8(v) }
