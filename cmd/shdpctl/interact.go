package main

import (
	"encoding/json/jsontext"
	"fmt"
	"net"
	"strconv"

	uuid "github.com/satori/go.uuid"
	"github.com/urfave/cli"

	"github.com/coregx/shdp/bitio"
	v1 "github.com/coregx/shdp/events/v1"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/transport"
	"github.com/coregx/shdp/websocket"
)

// interactCommand dials addr, sends an InteractionRequest built from
// the given flags, and prints whatever InteractionResponse comes back.
// When --request-id is omitted a fresh one is derived from
// uuid.NewV4(), truncated into the wire's 64-bit id field.
func interactCommand(c *cli.Context) error {
	addr := c.String("addr")
	if addr == "" {
		addr = "127.0.0.1:4567"
	}
	function := c.String("function")
	parent := c.String("parent")
	if function == "" || parent == "" {
		return cli.NewExitError("usage: shdpctl interact --function <name> --parent <name> [--addr host:port]", 1)
	}

	requestID, err := requestIDFrom(c.String("request-id"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	var token *string
	if t := c.String("token"); t != "" {
		token = &t
	}
	var objectID *int32
	if c.IsSet("object-id") {
		id := int32(c.Int("object-id"))
		objectID = &id
	}
	var params jsontext.Value
	if p := c.String("params"); p != "" {
		params = jsontext.Value(p)
	}

	req := v1.NewInteractionRequestEncoder(requestID, function, parent, token, objectID, params)
	wire, err := frame.Encode(frame.V1, req)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	var conn transport.Peer
	if c.Bool("ws") {
		wsConn, err := websocket.Dial("ws://" + addr + "/shdp")
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		conn = wsConn
	} else {
		netConn, err := net.Dial("tcp", addr)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		conn = transport.NewConn(netConn)
	}
	defer conn.Close()

	if err := conn.Write(wire); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	_, dec, err := transport.ReadFrame(conn, bitio.Lsb0)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	rd := v1.NewInteractionResponseDecoder(dec)
	if err := rd.Decode(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	resp := rd.(*v1.InteractionResponseDecoder)
	fmt.Printf("%s request_id=%d response=%s\n", magenta("response"), resp.RequestID, string(resp.Response))
	return nil
}

// requestIDFrom parses s as a decimal uint64, or derives one from a
// fresh random UUID's first eight bytes when s is empty.
func requestIDFrom(s string) (uint64, error) {
	if s != "" {
		return strconv.ParseUint(s, 10, 64)
	}
	id := uuid.NewV4()
	b := id.Bytes()
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7]), nil
}
