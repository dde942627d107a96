// Command shdpctl is a small CLI for exercising SHDP frames directly
// from a terminal: build and inspect them by hand, or run a loopback
// demo server and talk to it. Its command/flag shape is grounded on
// kryptco-kr/ctl/ctl.go's cli.NewApp()/cli.Command wiring.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "shdpctl"
	app.Usage = "build, inspect and exchange SHDP frames"
	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Aliases:   []string{"enc"},
			Usage:     "build a ComponentNeedsRequest frame for a component name",
			ArgsUsage: "<component-name>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out", Usage: "write the wire frame to this file instead of printing hex"},
			},
			Action: encodeCommand,
		},
		{
			Name:      "decode",
			Aliases:   []string{"dec"},
			Usage:     "parse a frame file and print its header and payload",
			ArgsUsage: "<frame-file>",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "server", Usage: "parse as a server->client (Lsb0) frame instead of client->server (Msb0)"},
			},
			Action: decodeCommand,
		},
		{
			Name:  "serve",
			Usage: "run a loopback demo server registering the v1 event catalogue",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "addr", Value: "127.0.0.1:4567", Usage: "address to listen on"},
				cli.BoolFlag{Name: "ws", Usage: "serve SHDP frames over WebSocket instead of raw TCP"},
			},
			Action: serveCommand,
		},
		{
			Name:      "interact",
			Usage:     "send an InteractionRequest to a running server and print the response",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "addr", Value: "127.0.0.1:4567", Usage: "server address to dial"},
				cli.BoolFlag{Name: "ws", Usage: "dial the server's WebSocket endpoint instead of raw TCP"},
				cli.StringFlag{Name: "function", Usage: "function name to invoke"},
				cli.StringFlag{Name: "parent", Usage: "parent component name"},
				cli.StringFlag{Name: "token", Usage: "optional auth token"},
				cli.IntFlag{Name: "object-id", Usage: "optional target object id"},
				cli.StringFlag{Name: "params", Usage: "optional JSON params document"},
				cli.StringFlag{Name: "request-id", Usage: "64-bit request id (decimal); a random one is generated when omitted"},
			},
			Action: interactCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}
