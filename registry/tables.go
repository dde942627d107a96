package registry

import "github.com/coregx/shdp/bitio"

// Incoming is the process-wide table for client->server frames,
// decoded in Msb0. Request codecs (e.g. events/v1's
// ComponentNeedsRequest) register their factories here.
var Incoming = NewTable(bitio.Msb0)

// Outgoing is the process-wide table for server->client frames,
// decoded in Lsb0. Response codecs register their factories here so a
// client dispatching a received frame can route through the same
// Table.Dispatch path a server uses for requests.
var Outgoing = NewTable(bitio.Lsb0)
