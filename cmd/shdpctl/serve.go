package main

import (
	"fmt"
	"net"
	"net/http"

	"github.com/coregx/shdp/arg"
	v1 "github.com/coregx/shdp/events/v1"
	"github.com/coregx/shdp/internal/shdplog"
	"github.com/coregx/shdp/registry"
	"github.com/coregx/shdp/shdperr"
	"github.com/coregx/shdp/transport"
	"github.com/coregx/shdp/websocket"
	"github.com/urfave/cli"
)

// serveCommand runs a loopback demo: it registers the v1 catalogue,
// wires a listener for each request event that round-trips a canned
// answer, and serves connections - raw TCP by default, WebSocket with
// --ws - through a single transport.Hub.
func serveCommand(c *cli.Context) error {
	addr := c.String("addr")
	if addr == "" {
		addr = "127.0.0.1:4567"
	}

	v1.Register()
	registry.Incoming.AddListener(registry.Key{Version: 1, Event: v1.EventComponentNeedsRequest}, componentNeedsListener)
	registry.Incoming.AddListener(registry.Key{Version: 1, Event: v1.EventInteractionRequest}, interactionListener)

	hub := transport.NewHub()

	if c.Bool("ws") {
		fmt.Println(green("listening on ws://" + addr + "/shdp"))
		mux := http.NewServeMux()
		mux.HandleFunc("/shdp", func(w http.ResponseWriter, r *http.Request) {
			conn, err := websocket.Upgrade(w, r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			fmt.Println(cyan("accepted " + conn.Addr()))
			hub.Serve(conn)
		})
		if err := http.ListenAndServe(addr, mux); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer ln.Close()
	fmt.Println(green("listening on " + addr))

	for {
		netConn, err := ln.Accept()
		if err != nil {
			shdplog.Log.Errorf("shdp: accept failed: %v", err)
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Println(cyan("accepted " + netConn.RemoteAddr().String()))
		go hub.Serve(transport.NewConn(netConn))
	}
}

// componentNeedsListener answers every request with an empty file
// list, enough to exercise the round trip without a real component
// tree behind it.
func componentNeedsListener(_ registry.RequestDecoder) ([]arg.Value, error) {
	return []arg.Value{arg.OptionTextValue(nil), arg.VecTextValue(nil)}, nil
}

// interactionListener echoes the request's params back as the
// response body.
func interactionListener(req registry.RequestDecoder) ([]arg.Value, error) {
	ir, ok := req.(*v1.InteractionRequest)
	if !ok {
		return nil, shdperr.New(500, shdperr.InternalServerError, "unexpected decoder type for interaction request")
	}

	var payload any
	if len(ir.Params) > 0 {
		payload = ir.Params
	}
	v, err := arg.OptionValueOf(payload)
	if err != nil {
		return nil, err
	}
	return []arg.Value{v}, nil
}
