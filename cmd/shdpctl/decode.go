package main

import (
	"fmt"
	"os"

	"github.com/coregx/shdp/bitio"
	v1 "github.com/coregx/shdp/events/v1"
	"github.com/coregx/shdp/frame"
	"github.com/coregx/shdp/registry"
	"github.com/urfave/cli"
)

func decodeCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.NewExitError("usage: shdpctl decode <frame-file>", 1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	order := bitio.Msb0
	if c.Bool("server") {
		order = bitio.Lsb0
	}

	header, dec, err := frame.Decode(data, order)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Printf("%s version=%d event=0x%04x data_size=%d\n",
		green("frame"), header.Version.Byte(), header.Event, header.DataSize)

	v1.Register()
	key := registry.Key{Version: header.Version.Byte(), Event: header.Event}
	factory, ok := registry.Incoming.GetFactory(key)
	if !ok {
		factory, ok = registry.Outgoing.GetFactory(key)
	}
	if !ok {
		fmt.Println(yellow("no known codec for this event; header only"))
		return nil
	}

	rd := factory(dec)
	if err := rd.Decode(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Printf("%s %+v\n", magenta("payload"), rd)
	return nil
}
