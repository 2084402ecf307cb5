package protocol

import "github.com/slipwayhq/slipwayd/internal/manifest"

// BuildRequest asks the daemon to run the build workflow for a manifest.
//
// Directory fields inside the manifest must be absolute; the daemon resolves
// nothing against its own working directory.
type BuildRequest struct {
	Manifest *manifest.Manifest `json:"manifest"` // Parsed build manifest.

	Args       map[string]string `json:"args,omitempty"`       // Caller-supplied build arguments.
	Properties map[string]string `json:"properties,omitempty"` // Command-line properties.

	Registry     string `json:"registry,omitempty"`      // Default registry for unqualified references.
	PullRegistry string `json:"pull-registry,omitempty"` // Registry override for pulls.
	AutoPull     string `json:"auto-pull,omitempty"`     // Pull policy token.

	Username string `json:"username,omitempty"` // Registry account name.
	Password string `json:"password,omitempty"` // Registry password or token.

	NoCacheOverride *string `json:"no-cache,omitempty"` // No-cache override; empty string means true.
	Parallel        bool    `json:"parallel,omitempty"` // Build the manifest's images concurrently.
}

// BuildResult reports a completed build.
type BuildResult struct {
	Built   []string `json:"built"`             // Image names built, in completion order.
	Elapsed string   `json:"elapsed,omitempty"` // Wall-clock duration of the whole request.
}

// StatusResult reports daemon liveness and counters.
type StatusResult struct {
	Running bool     `json:"running"`          // Always true in a response.
	Version string   `json:"version"`          // Daemon build version.
	Pid     int      `json:"pid"`              // Daemon process ID.
	Uptime  string   `json:"uptime"`           // Time since the daemon started.
	Builds  int      `json:"builds"`           // Build commands processed so far.
	Pulled  []string `json:"pulled,omitempty"` // Images pulled during this daemon's lifetime.
}

// ErrorResult carries a failure message back to the client.
type ErrorResult struct {
	Message string `json:"message"`
}
