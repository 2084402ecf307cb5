package cli

import (
	"context"
	"fmt"

	"github.com/slipwayhq/slipwayd/internal/protocol"
)

// Represents the 'slipwayd shutdown' command.
type ShutdownCmd struct{}

// Executes the shutdown command.
func (c *ShutdownCmd) Run(ctx context.Context) error {
	if _, err := request(RootCmd.Socket, protocol.CmdShutdown, nil); err != nil {
		return err
	}

	fmt.Println("daemon is shutting down")
	return nil
}
