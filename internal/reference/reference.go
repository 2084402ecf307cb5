package reference

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
	"github.com/opencontainers/go-digest"
)

// Tag applied when a name carries neither a tag nor a digest and a
// concrete reference is required (the daemon pulls "latest" in that case).
const DefaultTag = "latest"

// Represents a parsed image name of the form [registry/]repository[:tag][@digest].
//
// The zero value is not a valid name; use [Parse] to construct one. A Name is
// immutable; derivations return new values.
type Name struct {
	registry   string // Registry host, with optional port. Empty when the name has no registry part.
	repository string // Repository path, including any user or organization prefix.
	tag        string // Tag, without the leading colon. Empty when untagged.
	digest     string // Content digest, without the leading "@". Empty when absent.
}

// Parses and validates an image name.
//
// The name is split into registry, repository, tag, and digest parts using the
// daemon's conventions: the part before the first slash is a registry only when
// it contains a dot or colon or is exactly "localhost". The repository grammar
// is validated strictly (lowercase alphanumerics with a constrained set of
// separators) before the parts are accepted, so malformed names fail here
// rather than deep inside a daemon call.
func Parse(name string) (Name, error) {
	if strings.TrimSpace(name) == "" {
		return Name{}, fmt.Errorf("%w: name is empty", ErrInvalidName)
	}

	// The distribution grammar is authoritative; the manual split below only
	// decides how the accepted parts are carved up for printing.
	if _, err := reference.ParseNormalizedNamed(name); err != nil {
		return Name{}, fmt.Errorf("%w: %q: %w", ErrInvalidName, name, err)
	}

	n := Name{}

	rest := name
	if i := strings.IndexByte(rest, '@'); i >= 0 {
		n.digest = rest[i+1:]
		rest = rest[:i]

		if _, err := digest.Parse(n.digest); err != nil {
			return Name{}, fmt.Errorf("%w: %q: %w", ErrInvalidName, name, err)
		}
	}

	if i := strings.LastIndexByte(rest, ':'); i >= 0 && !strings.ContainsRune(rest[i:], '/') {
		n.tag = rest[i+1:]
		rest = rest[:i]
	}

	if i := strings.IndexByte(rest, '/'); i >= 0 && isRegistry(rest[:i]) {
		n.registry = rest[:i]
		rest = rest[i+1:]
	}

	n.repository = rest

	if n.repository == "" {
		return Name{}, fmt.Errorf("%w: %q: missing repository", ErrInvalidName, name)
	}

	return n, nil
}

// Reports whether the first path component of a name denotes a registry host
// rather than a repository prefix.
func isRegistry(part string) bool {
	return strings.ContainsAny(part, ".:") || part == "localhost"
}

// Returns the registry part, or the empty string when the name has none.
func (n Name) Registry() string {
	return n.registry
}

// Returns the repository part, without registry, tag, or digest.
func (n Name) Repository() string {
	return n.repository
}

// Returns the tag, or the empty string when the name is untagged.
func (n Name) Tag() string {
	return n.tag
}

// Returns the digest, or the empty string when the name has none.
func (n Name) Digest() string {
	return n.digest
}

// Reports whether the name embeds a registry.
func (n Name) HasRegistry() bool {
	return n.registry != ""
}

// Returns the name exactly as parsed, with all parts present in the original.
func (n Name) String() string {
	return n.FullName("")
}

// Returns the name qualified with a registry, tag, and digest where present.
//
// A registry embedded in the name wins over the optional one; when neither is
// set the name stays short. The tag and digest are appended as parsed, so an
// untagged name stays untagged.
func (n Name) FullName(optionalRegistry string) string {
	full := n.NameWithoutTag(optionalRegistry)
	if n.tag != "" {
		full += ":" + n.tag
	}
	if n.digest != "" {
		full += "@" + n.digest
	}
	return full
}

// Returns the registry-qualified repository without tag or digest.
//
// The embedded registry wins over the optional one, mirroring [Name.FullName].
func (n Name) NameWithoutTag(optionalRegistry string) string {
	registry := n.registry
	if registry == "" {
		registry = optionalRegistry
	}

	if registry != "" {
		return registry + "/" + n.repository
	}
	return n.repository
}

// Returns a copy tagged "latest" when the name carries neither tag nor digest.
//
// The daemon resolves an untagged pull to "latest" anyway; making the tag
// explicit keeps the pulled reference unambiguous. Names that already carry a
// tag or digest are returned unchanged.
func (n Name) WithLatestIfNoTag() Name {
	if n.tag == "" && n.digest == "" {
		n.tag = DefaultTag
	}
	return n
}
