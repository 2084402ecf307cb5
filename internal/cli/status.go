package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/slipwayhq/slipwayd/internal/protocol"
)

// Represents the 'slipwayd status' command.
type StatusCmd struct{}

// Executes the status command.
//
// Queries a running daemon over the Unix socket and prints its version,
// uptime, and counters.
func (c *StatusCmd) Run(ctx context.Context) error {
	body, err := request(RootCmd.Socket, protocol.CmdStatus, nil)
	if err != nil {
		return err
	}

	res, err := protocol.DecodePayload[protocol.StatusResult](body)
	if err != nil {
		return err
	}

	fmt.Printf("running: %v\n", res.Running)
	fmt.Printf("version: %s\n", res.Version)
	fmt.Printf("pid:     %d\n", res.Pid)
	fmt.Printf("uptime:  %s\n", res.Uptime)
	fmt.Printf("builds:  %d\n", res.Builds)

	if len(res.Pulled) > 0 {
		fmt.Printf("pulled:  %s\n", strings.Join(res.Pulled, ", "))
	}

	return nil
}
