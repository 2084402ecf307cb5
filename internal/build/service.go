package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slipwayhq/slipwayd/internal/assembly"
	"github.com/slipwayhq/slipwayd/internal/auth"
	"github.com/slipwayhq/slipwayd/internal/daemon"
	"github.com/slipwayhq/slipwayd/internal/dockerfile"
	"github.com/slipwayhq/slipwayd/internal/manifest"
	"github.com/slipwayhq/slipwayd/internal/query"
	"github.com/slipwayhq/slipwayd/internal/reference"
	"github.com/slipwayhq/slipwayd/internal/session"
)

// Controls the image workflows of one run.
type Options struct {
	SourceDir string // Root for resolving contexts, Dockerfiles, and archives.
	OutputDir string // Root for staging directories and produced archives.

	Args              map[string]string // Caller-supplied build arguments (lowest precedence).
	ProjectProperties map[string]string // Manifest properties, mined for prefixed build arguments.
	GlobalProperties  map[string]string // Command-line properties, mined the same way.

	Registry     string // Default registry for references that embed none.
	PullRegistry string // Registry override for pulls, consulted before Registry.
	AutoPull     string // Pull policy token ("on", "off", "always"; empty means "on").

	Auth            auth.Parameters // Registry credentials.
	NoCacheOverride *string         // Forces the no-cache flag when set; "" means true.
}

// Service runs per-image build workflows against one daemon.
//
// A service is safe for concurrent use; workflows for different images may
// run in parallel and share only the session's pull cache.
type Service struct {
	daemon   daemon.Access
	query    *query.Service
	producer *assembly.Producer
	session  *session.Session
	opts     Options
}

// Creates a build service for one run.
func New(d daemon.Access, sess *session.Session, opts Options) *Service {
	return &Service{
		daemon: d,
		query:  query.New(d),
		producer: assembly.NewProducer(assembly.Params{
			SourceDir: opts.SourceDir,
			OutputDir: opts.OutputDir,
		}),
		session: sess,
		opts:    opts,
	}
}

// Runs the end-to-end build workflow for one image.
//
// The image configuration is validated before anything touches the daemon.
// The base image is then resolved and made available per the pull policy,
// build arguments are merged, and the build itself is executed. Any failure
// aborts the workflow for this image; there is no partial success.
func (s *Service) Execute(ctx context.Context, img manifest.ImageConfig) error {
	if err := img.Validate(); err != nil {
		return err
	}

	spec := img.Build

	slog.Debug("starting workflow", "image", img.Name, "run", s.session.ID())

	platform, err := spec.TargetPlatform()
	if err != nil {
		return err
	}

	if base := s.resolveBaseImage(spec); base != "" && base != assembly.ScratchImage {
		if err := s.EnsureImage(ctx, base, platform, true); err != nil {
			return err
		}
	}

	args := ResolveArgs(s.opts.Args, s.opts.ProjectProperties, s.opts.GlobalProperties, spec.Args)

	return s.buildImage(ctx, img, args)
}

// Runs the workflow for every image and returns the names that were built.
//
// Sequential runs stop at the first failure. Parallel runs share this
// service's session, so a base image required by several workflows is still
// pulled only once; the first failure cancels the remaining workflows and is
// reported after the in-flight ones finish.
func (s *Service) ExecuteAll(ctx context.Context, images []manifest.ImageConfig, parallel bool) ([]string, error) {
	if !parallel {
		var built []string
		for _, img := range images {
			if err := s.Execute(ctx, img); err != nil {
				return built, fmt.Errorf("image %s: %w", img.Name, err)
			}
			built = append(built, img.Name)
		}
		return built, nil
	}

	group, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var built []string

	for _, img := range images {
		group.Go(func() error {
			if err := s.Execute(ctx, img); err != nil {
				return fmt.Errorf("image %s: %w", img.Name, err)
			}

			mu.Lock()
			built = append(built, img.Name)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return built, err
	}

	return built, nil
}

// Resolves the base image a build starts from.
//
// Archive loads have none. Dockerfile builds extract the first FROM
// instruction; a Dockerfile that cannot be read or parsed resolves to none,
// and the daemon build surfaces the real problem later. Assembled builds use
// the configured base, falling back to the scratch marker when no assembly
// descriptor is present either.
func (s *Service) resolveBaseImage(spec manifest.BuildSpec) string {
	switch {
	case spec.Source() == manifest.SourceArchive:
		return ""

	case spec.DockerfileMode():
		path := filepath.Join(s.opts.SourceDir, spec.Context, spec.Dockerfile)
		base, err := dockerfile.ExtractBaseImage(path)
		if err != nil {
			slog.Debug("base image not resolvable", "dockerfile", path, "error", err)
			return ""
		}
		return base

	case spec.From != "":
		return spec.From

	case spec.Assembly == nil:
		return assembly.ScratchImage

	default:
		return ""
	}
}

// EnsureImage makes an image available locally, honoring the pull policy
// and the run's pull cache.
//
// The policy decision, the pull, and the cache update run as one critical
// section on the session, so concurrent workflows coordinate their pulls.
// allowUnconditional permits an "always" policy to re-pull an image that is
// already present; base-image resolution passes true.
func (s *Service) EnsureImage(ctx context.Context, ref, platform string, allowUnconditional bool) error {
	name, err := reference.Parse(ref)
	if err != nil {
		return err
	}

	return s.session.CoordinatePull(ref,
		func(pulled bool) (bool, error) {
			return s.query.ImageRequiresAutoPull(ctx, s.opts.AutoPull, ref, allowUnconditional, pulled)
		},
		func() error {
			return s.pullImage(ctx, name, platform)
		})
}

// Pulls an image and, when a registry was applied that the original name
// does not embed, aliases the pulled reference back onto the short name.
func (s *Service) pullImage(ctx context.Context, name reference.Name, platform string) error {
	reg := s.effectivePullRegistry(name)

	encodedAuth, err := auth.Resolve(reg, false, s.opts.Auth)
	if err != nil {
		return err
	}

	// An untagged reference is pulled as :latest; the original reference
	// stays in use everywhere else.
	pullRef := name.WithLatestIfNoTag().FullName(reg)

	slog.Info("pulling image", "ref", pullRef)
	start := time.Now()

	if err := s.daemon.Pull(ctx, pullRef, encodedAuth, platform); err != nil {
		return err
	}

	slog.Info("pulled image", "ref", pullRef, "elapsed", elapsed(start))

	if reg != "" && !name.HasRegistry() {
		if err := s.daemon.Tag(ctx, pullRef, name.String()); err != nil {
			return err
		}
	}

	return nil
}

// Effective registry for a pull: one embedded in the reference wins, then
// the per-run pull registry, then the general registry.
func (s *Service) effectivePullRegistry(name reference.Name) string {
	switch {
	case name.HasRegistry():
		return name.Registry()
	case s.opts.PullRegistry != "":
		return s.opts.PullRegistry
	default:
		return s.opts.Registry
	}
}

// Builds one image and retires the image it superseded.
//
// The identity the name resolved to before the build is looked up only when
// the cleanup mode requests removal. Archive sources are loaded verbatim
// and skip both build and cleanup. Generative sources get a build-context
// archive from the producer and run through the daemon's builder; when the
// name's identity changed, the prior image is removed per the cleanup mode.
func (s *Service) buildImage(ctx context.Context, img manifest.ImageConfig, args map[string]string) error {
	spec := img.Build

	var oldID string
	if spec.Cleanup.RemovalRequested() {
		id, err := s.query.ResolveImageID(ctx, img.Name)
		if err != nil {
			return err
		}
		oldID = id
	}

	if spec.Source() == manifest.SourceArchive {
		return s.loadArchive(ctx, img.Name, spec.Archive)
	}

	archivePath, err := s.producer.Create(img.Name, spec)
	if err != nil {
		return err
	}

	platform, err := spec.TargetPlatform()
	if err != nil {
		return err
	}

	opts := daemon.BuildOptions{
		Dockerfile:  spec.Dockerfile,
		NoCache:     s.effectiveNoCache(spec),
		ForceRemove: spec.Cleanup.RemovalRequested(),
		Args:        args,
		Platform:    platform,
		Network:     spec.Options.Network,
		Target:      spec.Options.Target,
		Labels:      spec.Options.Labels,
		CacheFrom:   spec.Options.CacheFrom,
	}

	slog.Info("building image", "image", img.Name)
	start := time.Now()

	newID, err := s.daemon.Build(ctx, img.Name, archivePath, opts)
	if err != nil {
		return err
	}

	slog.Info("built image", "image", img.Name, "id", daemon.ShortID(newID), "elapsed", elapsed(start))

	if oldID != "" && oldID != newID {
		if out := s.attemptRemoval(ctx, spec.Cleanup, oldID); out.State == RemovalFailed {
			return out.Cause
		}
	}

	return nil
}

// Loads a pre-built image archive into the daemon.
func (s *Service) loadArchive(ctx context.Context, name, archive string) error {
	path := filepath.Join(s.opts.SourceDir, archive)

	slog.Info("loading image archive", "image", name, "archive", path)
	start := time.Now()

	if err := s.daemon.Load(ctx, path); err != nil {
		return err
	}

	slog.Info("loaded image archive", "image", name, "elapsed", elapsed(start))
	return nil
}

// Effective no-cache flag for a build. A run-level override wins over the
// spec's flag; an empty override string means true, anything unparsable
// means false.
func (s *Service) effectiveNoCache(spec manifest.BuildSpec) bool {
	if s.opts.NoCacheOverride == nil {
		return spec.NoCache
	}

	override := *s.opts.NoCacheOverride
	if override == "" {
		return true
	}

	v, err := strconv.ParseBool(override)
	if err != nil {
		return false
	}
	return v
}

// Formats a duration for log output.
func elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}
