package manifest

import (
	"fmt"

	"github.com/containerd/platforms"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Parses a platform string into its OCI form.
//
// Partial values are completed the way the daemon would complete them
// ("arm64" becomes the host OS with architecture arm64).
func parsePlatform(s string) (ocispec.Platform, error) {
	p, err := platforms.Parse(s)
	if err != nil {
		return ocispec.Platform{}, fmt.Errorf("%w: platform %q: %w", ErrManifest, s, err)
	}
	return p, nil
}

// Normalizes a platform string to the canonical os/arch[/variant] form the
// daemon expects.
func normalizePlatform(s string) (string, error) {
	p, err := parsePlatform(s)
	if err != nil {
		return "", err
	}
	return platforms.FormatAll(p), nil
}

// Returns the canonical target platform for the build, or the empty string
// when the build spec leaves the platform to the daemon.
func (s BuildSpec) TargetPlatform() (string, error) {
	if s.Platform == "" {
		return "", nil
	}
	return normalizePlatform(s.Platform)
}
