package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/slipwayhq/slipwayd/internal"
)

// Represents the root command for the slipwayd CLI.
var RootCmd struct {
	Quiet    bool        `short:"q" help:"Suppress informational output."`
	Verbose  bool        `short:"v" help:"Enable verbose output."`
	Debug    bool        `short:"d" help:"Enable debug output."`
	Socket   string      `short:"s" help:"Override the default Unix socket path." placeholder:"PATH"`
	Build    BuildCmd    `cmd:"" help:"Build the images a manifest declares."`
	Start    StartCmd    `cmd:"" help:"Start the daemon."`
	Status   StatusCmd   `cmd:"" help:"Show the status of a running daemon."`
	Shutdown ShutdownCmd `cmd:"" help:"Stop a running daemon."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("The Slipway build daemon.\n\nBuilds container images from declarative manifests against the Docker daemon, either in-process or through a daemon listening on a Unix domain socket."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	verbose := RootCmd.Verbose || internal.IsVerbose()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else if quiet {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose,
	})

	slog.SetDefault(slog.New(handler))
}
