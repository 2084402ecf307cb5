package assembly

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slipwayhq/slipwayd/internal/manifest"
)

const (

	// Base image marker for builds with no real base layer. Never pulled.
	ScratchImage = "scratch"

	// Default base for assembled images that name no base of their own.
	DefaultDataImage = "busybox:latest"

	// Default in-image destination for assembled files.
	DefaultTargetDir = "/slipway"
)

// Synthesizes the Dockerfile for an assembled image build.
func buildDockerfile(spec manifest.BuildSpec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FROM %s\n", baseImage(spec))

	if asm := spec.Assembly; asm != nil {
		target := asm.TargetDir
		if target == "" {
			target = DefaultTargetDir
		}
		fmt.Fprintf(&b, "COPY %s %s\n", payloadDir, target)

		if len(asm.Entrypoint) > 0 {
			entry, _ := json.Marshal(asm.Entrypoint)
			fmt.Fprintf(&b, "ENTRYPOINT %s\n", entry)
		}
	}

	return b.String()
}

// Returns the base image for a synthesized Dockerfile.
func baseImage(spec manifest.BuildSpec) string {
	switch {
	case spec.From != "":
		return spec.From
	case spec.Assembly != nil:
		return DefaultDataImage
	default:
		return ScratchImage
	}
}
