package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/slipwayhq/slipwayd/internal/auth"
	"github.com/slipwayhq/slipwayd/internal/build"
	"github.com/slipwayhq/slipwayd/internal/daemon"
	"github.com/slipwayhq/slipwayd/internal/manifest"
	"github.com/slipwayhq/slipwayd/internal/protocol"
	"github.com/slipwayhq/slipwayd/internal/session"
)

// Represents the 'slipwayd build' command.
type BuildCmd struct {
	Images []string `arg:"" optional:"" help:"Build only the named images. Default is every image in the manifest."`

	File     string `short:"f" default:"slipway.yaml" help:"Manifest file to build." placeholder:"PATH"`
	Parallel bool   `short:"p" help:"Build the selected images concurrently."`
	Remote   bool   `help:"Send the build to a running daemon instead of building in-process."`
	Host     string `help:"Docker daemon address. Default uses the environment." placeholder:"ADDR"`

	Registry     string `help:"Default registry for image references without one." placeholder:"HOST"`
	PullRegistry string `help:"Registry to pull base images through." placeholder:"HOST"`
	AutoPull     string `default:"on" enum:"on,off,always" help:"Base image pull policy."`

	NoCache  *string           `env:"SLIPWAY_NOCACHE" help:"Override every image's no-cache setting. An empty value means true."`
	Property map[string]string `short:"P" help:"Global properties, also a build-argument source." placeholder:"KEY=VALUE"`
	BuildArg map[string]string `help:"Build arguments applied to every image." placeholder:"KEY=VALUE"`

	Username string `help:"Registry account for pull authentication." placeholder:"NAME"`
	Password string `help:"Registry password or token." placeholder:"SECRET"`
}

// Executes the build command.
//
// Loads the manifest, resolves its directories against the manifest file's
// location, and runs the build workflow for the selected images, either
// in-process or on a running daemon.
func (c *BuildCmd) Run(ctx context.Context) error {
	m, err := manifest.Load(c.File)
	if err != nil {
		return err
	}

	if err := absolutize(m, c.File); err != nil {
		return err
	}

	images, err := selectImages(m, c.Images)
	if err != nil {
		return err
	}

	if c.Remote {
		return c.runRemote(m, images)
	}

	docker, err := daemon.New(c.Host)
	if err != nil {
		return err
	}
	defer docker.Close()

	svc := build.New(docker, session.New(session.NewMemoryStore()), build.Options{
		SourceDir:         m.SourceDir,
		OutputDir:         m.OutputDir,
		Args:              c.BuildArg,
		ProjectProperties: m.Properties,
		GlobalProperties:  c.Property,
		Registry:          c.Registry,
		PullRegistry:      c.PullRegistry,
		AutoPull:          c.AutoPull,
		Auth:              auth.Parameters{Username: c.Username, Password: c.Password},
		NoCacheOverride:   c.NoCache,
	})

	start := time.Now()

	built, err := svc.ExecuteAll(ctx, images, c.Parallel)
	if err != nil {
		return err
	}

	slog.Info("build complete", "images", len(built), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// Sends the build to a running daemon over the Unix socket.
func (c *BuildCmd) runRemote(m *manifest.Manifest, images []manifest.ImageConfig) error {
	m.Images = images

	body, err := request(RootCmd.Socket, protocol.CmdBuild, &protocol.BuildRequest{
		Manifest:        m,
		Args:            c.BuildArg,
		Properties:      c.Property,
		Registry:        c.Registry,
		PullRegistry:    c.PullRegistry,
		AutoPull:        c.AutoPull,
		Username:        c.Username,
		Password:        c.Password,
		NoCacheOverride: c.NoCache,
		Parallel:        c.Parallel,
	})
	if err != nil {
		return err
	}

	res, err := protocol.DecodePayload[protocol.BuildResult](body)
	if err != nil {
		return err
	}

	slog.Info("build complete", "images", len(res.Built), "elapsed", res.Elapsed)
	return nil
}

// Resolves the manifest's directories against the manifest file's location.
//
// The build workflow treats both as absolute and resolves nothing against
// its own working directory, which for a remote build belongs to the daemon
// process anyway.
func absolutize(m *manifest.Manifest, file string) error {
	base, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return err
	}

	if !filepath.IsAbs(m.SourceDir) {
		m.SourceDir = filepath.Join(base, m.SourceDir)
	}
	if !filepath.IsAbs(m.OutputDir) {
		m.OutputDir = filepath.Join(base, m.OutputDir)
	}
	return nil
}

// Returns the images to build, honoring an explicit selection.
func selectImages(m *manifest.Manifest, names []string) ([]manifest.ImageConfig, error) {
	if len(names) == 0 {
		return m.Images, nil
	}

	images := make([]manifest.ImageConfig, 0, len(names))
	for _, name := range names {
		img, ok := m.Image(name)
		if !ok {
			return nil, fmt.Errorf("%w: image %s is not in the manifest", manifest.ErrManifest, name)
		}
		images = append(images, img)
	}
	return images, nil
}
