package reference

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		registry   string
		repository string
		tag        string
		digest     string
	}{
		{
			name:       "bare repository",
			input:      "busybox",
			repository: "busybox",
		},
		{
			name:       "repository with tag",
			input:      "busybox:1.36",
			repository: "busybox",
			tag:        "1.36",
		},
		{
			name:       "user repository",
			input:      "slipway/base:latest",
			repository: "slipway/base",
			tag:        "latest",
		},
		{
			name:       "registry with dot",
			input:      "quay.io/slipway/base:1.2",
			registry:   "quay.io",
			repository: "slipway/base",
			tag:        "1.2",
		},
		{
			name:       "registry with port",
			input:      "registry:5000/base",
			registry:   "registry:5000",
			repository: "base",
		},
		{
			name:       "localhost registry",
			input:      "localhost/base:dev",
			registry:   "localhost",
			repository: "base",
			tag:        "dev",
		},
		{
			name:       "digest reference",
			input:      "busybox@sha256:7cc4b5aefd1d0cadf8d97d4350462ba51c694ebca145b08d7d41b41acc8db5aa",
			repository: "busybox",
			digest:     "sha256:7cc4b5aefd1d0cadf8d97d4350462ba51c694ebca145b08d7d41b41acc8db5aa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if n.Registry() != tt.registry {
				t.Errorf("registry = %q, want %q", n.Registry(), tt.registry)
			}
			if n.Repository() != tt.repository {
				t.Errorf("repository = %q, want %q", n.Repository(), tt.repository)
			}
			if n.Tag() != tt.tag {
				t.Errorf("tag = %q, want %q", n.Tag(), tt.tag)
			}
			if n.Digest() != tt.digest {
				t.Errorf("digest = %q, want %q", n.Digest(), tt.digest)
			}
			if n.String() != tt.input {
				t.Errorf("String() = %q, want %q", n.String(), tt.input)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"UPPERCASE",
		"repo name with spaces",
		"repo:tag:tag",
		"repo::",
		"-leading/dash",
		"busybox@sha256:short",
	}

	for _, input := range invalid {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		} else if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidName", input, err)
		}
	}
}

func TestFullName(t *testing.T) {
	n, err := Parse("slipway/base:1.2")
	if err != nil {
		t.Fatal(err)
	}

	if got := n.FullName(""); got != "slipway/base:1.2" {
		t.Fatalf("FullName(\"\") = %q, want slipway/base:1.2", got)
	}
	if got := n.FullName("quay.io"); got != "quay.io/slipway/base:1.2" {
		t.Fatalf("FullName(quay.io) = %q, want quay.io/slipway/base:1.2", got)
	}
}

func TestFullNameEmbeddedRegistryWins(t *testing.T) {
	n, err := Parse("quay.io/slipway/base:1.2")
	if err != nil {
		t.Fatal(err)
	}

	if got := n.FullName("other.example.com"); got != "quay.io/slipway/base:1.2" {
		t.Fatalf("FullName = %q, embedded registry should win", got)
	}
}

func TestNameWithoutTag(t *testing.T) {
	n, err := Parse("quay.io/slipway/base:1.2")
	if err != nil {
		t.Fatal(err)
	}

	if got := n.NameWithoutTag(""); got != "quay.io/slipway/base" {
		t.Fatalf("NameWithoutTag = %q, want quay.io/slipway/base", got)
	}
}

func TestWithLatestIfNoTag(t *testing.T) {
	n, err := Parse("slipway/base")
	if err != nil {
		t.Fatal(err)
	}

	tagged := n.WithLatestIfNoTag()
	if tagged.Tag() != "latest" {
		t.Fatalf("tag = %q, want latest", tagged.Tag())
	}
	if n.Tag() != "" {
		t.Fatalf("original mutated: tag = %q", n.Tag())
	}

	// Already-tagged and digest references are left alone.
	both := []string{
		"slipway/base:1.2",
		"busybox@sha256:7cc4b5aefd1d0cadf8d97d4350462ba51c694ebca145b08d7d41b41acc8db5aa",
	}
	for _, input := range both {
		parsed, err := Parse(input)
		if err != nil {
			t.Fatal(err)
		}
		if got := parsed.WithLatestIfNoTag(); got.String() != input {
			t.Errorf("WithLatestIfNoTag(%q) = %q, want unchanged", input, got.String())
		}
	}
}

func TestHasRegistry(t *testing.T) {
	withReg, err := Parse("registry:5000/base")
	if err != nil {
		t.Fatal(err)
	}
	if !withReg.HasRegistry() {
		t.Fatal("HasRegistry() = false for registry:5000/base")
	}

	without, err := Parse("slipway/base")
	if err != nil {
		t.Fatal(err)
	}
	if without.HasRegistry() {
		t.Fatal("HasRegistry() = true for slipway/base")
	}
}
