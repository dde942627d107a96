package main

import (
	"fmt"
	"os"

	"github.com/coregx/shdp/bitio"
	v1 "github.com/coregx/shdp/events/v1"
	"github.com/coregx/shdp/frame"
	"github.com/urfave/cli"
)

// componentNeedsRequestEncoder is the client-side builder for event
// 0x0000. The v1 catalogue only ships a server-side decoder for this
// event (a real client never needs to decode its own request), so this
// CLI carries the matching encoder, built the same way
// InteractionRequestEncoder is in events/v1/interaction.go.
type componentNeedsRequestEncoder struct {
	componentName string
}

func (e *componentNeedsRequestEncoder) EventID() uint16 { return v1.EventComponentNeedsRequest }

func (e *componentNeedsRequestEncoder) Encode() (*bitio.Encoder, error) {
	enc := bitio.NewEncoder(bitio.Msb0)
	if err := enc.AppendBytes([]byte(e.componentName)); err != nil {
		return nil, err
	}
	return enc, nil
}

func encodeCommand(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return cli.NewExitError("usage: shdpctl encode <component-name>", 1)
	}

	wire, err := frame.Encode(frame.V1, &componentNeedsRequestEncoder{componentName: name})
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	out := c.String("out")
	if out == "" {
		fmt.Println(cyan(fmt.Sprintf("%x", wire)))
		return nil
	}
	if err := os.WriteFile(out, wire, 0o644); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Println(green(fmt.Sprintf("wrote %d bytes to %s", len(wire), out)))
	return nil
}
