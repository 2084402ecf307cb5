package assembly

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/go-archive"
	"github.com/moby/patternmatcher/ignorefile"

	"github.com/slipwayhq/slipwayd/internal/manifest"
)

// Name of the produced build-context archive within an image's output
// directory.
const archiveName = "docker-build.tar"

// Directory inside a staged build that receives assembled files. The
// synthesized Dockerfile copies from this directory.
const payloadDir = "assembly"

// Params locates the directories a producer works with.
type Params struct {
	SourceDir string // Root for resolving build contexts and assembly dirs.
	OutputDir string // Root for staging directories and produced archives.
}

// Producer creates build-context archives for image builds.
type Producer struct {
	params Params
}

// Creates a producer rooted at the given directories.
func NewProducer(params Params) *Producer {
	return &Producer{params: params}
}

// Creates the build-context archive for an image and returns its path.
//
// Dockerfile builds tar the configured context directory, honoring a
// .dockerignore file when present. Assembled builds stage the assembly
// payload next to a synthesized Dockerfile and tar the staging tree.
func (p *Producer) Create(name string, spec manifest.BuildSpec) (string, error) {
	if spec.DockerfileMode() {
		return p.contextArchive(name, spec)
	}
	return p.assembledArchive(name, spec)
}

// Tars the user-provided build context for a Dockerfile build.
func (p *Producer) contextArchive(name string, spec manifest.BuildSpec) (string, error) {
	contextDir := filepath.Join(p.params.SourceDir, spec.Context)

	if _, err := os.Stat(filepath.Join(contextDir, spec.Dockerfile)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	excludes, err := readIgnoreFile(contextDir, spec.Dockerfile)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	slog.Debug("archiving build context", "image", name, "context", contextDir, "excludes", len(excludes))

	return p.writeArchive(name, contextDir, excludes)
}

// Stages and tars a synthesized build for an assembled image.
func (p *Producer) assembledArchive(name string, spec manifest.BuildSpec) (string, error) {
	staging := filepath.Join(p.imageDir(name), "build")

	if err := os.RemoveAll(staging); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if err := os.MkdirAll(staging, 0755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	if asm := spec.Assembly; asm != nil {
		src := filepath.Join(p.params.SourceDir, asm.Dir)
		if err := copyTree(src, filepath.Join(staging, payloadDir)); err != nil {
			return "", err
		}
	}

	content := buildDockerfile(spec)
	if err := os.WriteFile(filepath.Join(staging, "Dockerfile"), []byte(content), 0644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	slog.Debug("staged assembled build", "image", name, "dir", staging)

	return p.writeArchive(name, staging, nil)
}

// Tars a directory into the image's archive file and returns its path.
func (p *Producer) writeArchive(name, dir string, excludes []string) (string, error) {
	out := filepath.Join(p.imageDir(name), archiveName)

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	stream, err := archive.TarWithOptions(dir, &archive.TarOptions{ExcludePatterns: excludes})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer stream.Close()

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	return out, nil
}

// Directory under the output root holding an image's build artifacts.
func (p *Producer) imageDir(name string) string {
	return filepath.Join(p.params.OutputDir, slugify(name))
}

// Flattens an image name into a path-safe directory name.
func slugify(name string) string {
	return strings.NewReplacer("/", "-", ":", "-").Replace(name)
}

// Reads .dockerignore patterns from the context directory.
//
// The Dockerfile and the ignore file itself are always re-included: the
// daemon cannot build without them.
func readIgnoreFile(contextDir, dockerfileName string) ([]string, error) {
	f, err := os.Open(filepath.Join(contextDir, ".dockerignore"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	excludes, err := ignorefile.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(excludes) == 0 {
		return nil, nil
	}

	return append(excludes, "!"+filepath.ToSlash(dockerfileName), "!.dockerignore"), nil
}
