package build

import (
	"context"
	"errors"
	"log/slog"

	"github.com/slipwayhq/slipwayd/internal/daemon"
	"github.com/slipwayhq/slipwayd/internal/manifest"
)

// How a superseded-image removal attempt ended.
type OutcomeState int

const (

	// No removal was attempted.
	RemovalSkipped OutcomeState = iota

	// The superseded image was removed.
	Removed

	// Removal failed and the cleanup mode downgraded the failure to a warning.
	RemovalTolerated

	// Removal failed and the failure is fatal for the build.
	RemovalFailed
)

// Returns the state name for logs.
func (o OutcomeState) String() string {
	switch o {
	case RemovalSkipped:
		return "skipped"
	case Removed:
		return "removed"
	case RemovalTolerated:
		return "tolerated"
	case RemovalFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports how a superseded-image removal ended, with the failure
// cause when there was one.
type Outcome struct {
	State OutcomeState
	Cause error // Set for tolerated and failed removals.
}

// Attempts removal of a superseded image according to the cleanup mode.
//
// Under "try", a failed removal is logged with its cause and the build
// still counts as successful. Under "remove", the failure is returned to
// the caller as fatal.
func (s *Service) attemptRemoval(ctx context.Context, mode manifest.CleanupMode, id string) Outcome {
	if !mode.RemovalRequested() || id == "" {
		return Outcome{State: RemovalSkipped}
	}

	if err := s.daemon.Remove(ctx, id, true); err != nil {
		if mode == manifest.CleanupRemove {
			return Outcome{State: RemovalFailed, Cause: err}
		}

		attrs := []any{"id", daemon.ShortID(id), "error", err}
		if cause := errors.Unwrap(err); cause != nil {
			attrs = append(attrs, "cause", cause)
		}
		slog.Warn("could not remove superseded image", attrs...)

		return Outcome{State: RemovalTolerated, Cause: err}
	}

	slog.Info("removed superseded image", "id", daemon.ShortID(id))
	return Outcome{State: Removed}
}
