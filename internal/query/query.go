package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/slipwayhq/slipwayd/internal/daemon"
)

// How a pull policy treats images that are already present locally.
type pullMode int

const (

	// Pull only when the image is missing locally.
	pullOn pullMode = iota

	// Never pull; a missing image is an error.
	pullOff

	// Pull even when the image is present, at most once per run.
	pullAlways
)

// Parses a pull policy token. "on"/"true", "off"/"false", and "always" are
// accepted; the empty string means "on".
func parseMode(policy string) (pullMode, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", "on", "true":
		return pullOn, nil
	case "off", "false":
		return pullOff, nil
	case "always":
		return pullAlways, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrPolicy, policy)
	}
}

// Answers image-existence questions for the build workflow.
type Service struct {
	daemon daemon.Access // Daemon used for identity lookups.
}

// Creates a query service backed by the given daemon.
func New(d daemon.Access) *Service {
	return &Service{daemon: d}
}

// Decides whether an image must be pulled before it can be used.
//
// The decision combines the run's pull policy with the image's local presence:
// a missing image is pulled under "on" and "always" and is an error under
// "off". For present images, "always" still pulls when the caller permits an
// unconditional pull and the image has not already been pulled this run
// (pulled reflects the run's pull cache).
func (s *Service) ImageRequiresAutoPull(ctx context.Context, policy, ref string, allowUnconditional, pulled bool) (bool, error) {
	mode, err := parseMode(policy)
	if err != nil {
		return false, err
	}

	present, err := s.hasImage(ctx, ref)
	if err != nil {
		return false, err
	}

	if mode == pullOff {
		if !present {
			return false, fmt.Errorf("%w: %s is not present locally and the pull policy is off", ErrImageMissing, ref)
		}
		return false, nil
	}

	if !present {
		return true, nil
	}

	return mode == pullAlways && allowUnconditional && !pulled, nil
}

// Returns the identifier a name currently resolves to, or the empty string
// when the daemon does not know the name.
func (s *Service) ResolveImageID(ctx context.Context, name string) (string, error) {
	return s.daemon.InspectID(ctx, name)
}

// Reports whether the daemon has an image under the given reference.
func (s *Service) hasImage(ctx context.Context, ref string) (bool, error) {
	id, err := s.daemon.InspectID(ctx, ref)
	if err != nil {
		return false, err
	}
	return id != "", nil
}
