package cli

import (
	"context"
	"log/slog"

	"github.com/slipwayhq/slipwayd/internal/server"
)

// Represents the 'slipwayd start' command.
type StartCmd struct {
	Host string `help:"Docker daemon address. Default uses the environment." placeholder:"ADDR"`
}

// Executes the start command.
//
// Starts the server on a Unix domain socket and blocks until the context is
// cancelled (e.g. via SIGINT or SIGTERM) or a shutdown command arrives over
// the socket.
func (c *StartCmd) Run(ctx context.Context) error {
	srv, err := server.New(server.Config{
		SocketPath: RootCmd.Socket,
		DockerHost: c.Host,
	})
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	slog.Info("slipwayd is running")

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		srv.Stop()
	}()

	srv.Wait()
	return nil
}
