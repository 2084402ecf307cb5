package manifest

import (
	"fmt"

	"github.com/slipwayhq/slipwayd/internal/reference"
)

// Where a build gets its image content from.
type SourceKind int

const (

	// Build from a Dockerfile or an assembly via the daemon's builder.
	SourceGenerative SourceKind = iota

	// Load a pre-built image archive verbatim.
	SourceArchive
)

// Declares one image to build.
type ImageConfig struct {
	Name  string    `yaml:"name" json:"name"`   // Image reference the build result is tagged with.
	Build BuildSpec `yaml:"build" json:"build"` // How the image is produced.
}

// Describes how an image is produced: either a pre-built archive to load, or
// generative inputs for the daemon's builder. Within generative inputs,
// Dockerfile mode and assembly mode are mutually exclusive.
type BuildSpec struct {
	Archive    string            `yaml:"archive,omitempty" json:"archive,omitempty"`       // Image archive to load verbatim.
	From       string            `yaml:"from,omitempty" json:"from,omitempty"`             // Base image for assembly builds.
	Dockerfile string            `yaml:"dockerfile,omitempty" json:"dockerfile,omitempty"` // Dockerfile path, relative to the context directory.
	Context    string            `yaml:"context,omitempty" json:"context,omitempty"`       // Build context directory, relative to the source dir.
	Assembly   *Assembly         `yaml:"assembly,omitempty" json:"assembly,omitempty"`     // Assembly descriptor for Dockerfile-less builds.
	NoCache    bool              `yaml:"no-cache,omitempty" json:"no-cache,omitempty"`     // Disables the daemon's build cache.
	Cleanup    CleanupMode       `yaml:"cleanup,omitempty" json:"cleanup,omitempty"`       // What to do with the image this build supersedes.
	Args       map[string]string `yaml:"args,omitempty" json:"args,omitempty"`             // Image-level build arguments.
	Platform   string            `yaml:"platform,omitempty" json:"platform,omitempty"`     // Target platform (e.g. "linux/amd64").
	Options    Options           `yaml:"options,omitempty" json:"options,omitempty"`       // Daemon builder options.
}

// Collects files into an image without a Dockerfile. A build Dockerfile is
// synthesized from the base image, the assembly directory, and the optional
// entrypoint.
type Assembly struct {
	Dir        string   `yaml:"dir" json:"dir"`                                   // Host directory whose contents become the image payload.
	TargetDir  string   `yaml:"target-dir,omitempty" json:"target-dir,omitempty"` // In-image destination directory. Defaults to "/slipway".
	Entrypoint []string `yaml:"entrypoint,omitempty" json:"entrypoint,omitempty"` // Entrypoint set on the assembled image.
}

// Backend-specific build options passed through to the daemon's builder.
type Options struct {
	Network   string            `yaml:"network,omitempty" json:"network,omitempty"`       // Network mode for build-time RUN instructions.
	Target    string            `yaml:"target,omitempty" json:"target,omitempty"`         // Target stage for multi-stage Dockerfiles.
	Labels    map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`         // Labels applied to the built image.
	CacheFrom []string          `yaml:"cache-from,omitempty" json:"cache-from,omitempty"` // Images usable as cache sources.
}

// Returns whether this spec loads an archive or runs a generative build.
func (s BuildSpec) Source() SourceKind {
	if s.Archive != "" {
		return SourceArchive
	}
	return SourceGenerative
}

// Reports whether the generative build is driven by a Dockerfile.
func (s BuildSpec) DockerfileMode() bool {
	return s.Dockerfile != ""
}

// Checks the build spec's internal consistency.
//
// An archive source excludes every generative input, and a Dockerfile
// excludes an assembly descriptor. Violations fail here, before any daemon
// or filesystem work starts.
func (s BuildSpec) Validate() error {
	if s.Archive != "" {
		if s.From != "" || s.Dockerfile != "" || s.Assembly != nil {
			return fmt.Errorf("%w: archive excludes from, dockerfile, and assembly", ErrManifest)
		}
		return nil
	}

	if s.Dockerfile != "" && s.Assembly != nil {
		return fmt.Errorf("%w: dockerfile and assembly are mutually exclusive", ErrManifest)
	}

	if s.Assembly != nil && s.Assembly.Dir == "" {
		return fmt.Errorf("%w: assembly requires a dir", ErrManifest)
	}

	if s.Platform != "" {
		if _, err := normalizePlatform(s.Platform); err != nil {
			return err
		}
	}

	return nil
}

// Checks the image name and the build spec.
func (c ImageConfig) Validate() error {
	if _, err := reference.Parse(c.Name); err != nil {
		return err
	}

	if err := c.Build.Validate(); err != nil {
		return fmt.Errorf("image %s: %w", c.Name, err)
	}
	return nil
}
