package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/slipwayhq/slipwayd/internal"
	"github.com/slipwayhq/slipwayd/internal/cli"
)

// The entry point for the slipwayd daemon.
//
// Initializes logging, displays startup information, and executes the root
// command. If any error occurs during execution, it exits with a non-zero code.
func main() {
	// Registry credentials and overrides may come from a .env file in the
	// working directory. Absence is not an error. Must happen before flag
	// parsing so env-backed flags see the loaded values.
	godotenv.Load()

	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("slipwayd is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Creates a logger seeded from build-time linker flags.
//
// The logger is reconfigured after flag parsing via cli.Execute.
func logger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()})
	return slog.New(handler)
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
