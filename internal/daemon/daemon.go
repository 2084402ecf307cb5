package daemon

import "context"

// Provides the image operations the build workflow needs from a daemon.
//
// Implementations wrap one daemon connection. Every method returns an
// [*OperationError] on failure so callers can report the operation and its
// underlying cause uniformly.
type Access interface {

	// Pulls an image. The reference must be fully qualified; encodedAuth is
	// the base64 registry auth header, empty for anonymous pulls.
	Pull(ctx context.Context, ref, encodedAuth, platform string) error

	// Builds an image from a build-context archive and tags it with name.
	// Returns the identifier of the newly built image.
	Build(ctx context.Context, name, archivePath string, opts BuildOptions) (string, error)

	// Loads the images contained in an archive into the daemon.
	Load(ctx context.Context, archivePath string) error

	// Tags the source image under an additional target name.
	Tag(ctx context.Context, source, target string) error

	// Removes an image by identifier or reference.
	Remove(ctx context.Context, id string, force bool) error

	// Returns the identifier an image name currently resolves to, or the
	// empty string when the daemon does not know the name.
	InspectID(ctx context.Context, name string) (string, error)
}

// Controls a single image build.
type BuildOptions struct {
	Dockerfile  string            // Dockerfile name within the build context. Empty uses the daemon default.
	NoCache     bool              // Disables the daemon's build cache.
	ForceRemove bool              // Always removes intermediate containers, even after a failed build.
	Args        map[string]string // Build arguments passed to the Dockerfile.
	Platform    string            // Target platform (e.g. "linux/amd64"). Empty uses the daemon default.
	Network     string            // Network mode for build-time RUN instructions.
	Target      string            // Target stage for multi-stage builds.
	Labels      map[string]string // Labels applied to the built image.
	CacheFrom   []string          // Images the daemon may use as cache sources.
}
