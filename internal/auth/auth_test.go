package auth

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docker/docker/api/types/registry"
)

// Points DOCKER_CONFIG at an isolated directory so tests never read the
// developer's real credentials, and clears the credential environment.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("DOCKER_CONFIG", dir)
	for _, name := range []string{
		"SLIPWAY_USERNAME", "SLIPWAY_PASSWORD",
		"SLIPWAY_PULL_USERNAME", "SLIPWAY_PULL_PASSWORD",
		"SLIPWAY_PUSH_USERNAME", "SLIPWAY_PUSH_PASSWORD",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func decode(t *testing.T, encoded string) registry.AuthConfig {
	t.Helper()

	cfg, err := registry.DecodeAuthConfig(encoded)
	if err != nil {
		t.Fatalf("decoding auth header: %v", err)
	}
	return *cfg
}

func TestResolveParameters(t *testing.T) {
	isolate(t)

	encoded, err := Resolve("quay.io", false, Parameters{Username: "builder", Password: "secret"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	cfg := decode(t, encoded)
	if cfg.Username != "builder" || cfg.Password != "secret" {
		t.Fatalf("credentials = %s/%s, want builder/secret", cfg.Username, cfg.Password)
	}
	if cfg.ServerAddress != "quay.io" {
		t.Fatalf("server = %q, want quay.io", cfg.ServerAddress)
	}
}

func TestResolveEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("SLIPWAY_USERNAME", "envuser")
	t.Setenv("SLIPWAY_PASSWORD", "envpass")

	encoded, err := Resolve("quay.io", false, Parameters{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg := decode(t, encoded); cfg.Username != "envuser" {
		t.Fatalf("username = %q, want envuser", cfg.Username)
	}
}

func TestResolveEnvironmentScopePrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("SLIPWAY_USERNAME", "general")
	t.Setenv("SLIPWAY_PULL_USERNAME", "puller")
	t.Setenv("SLIPWAY_PULL_PASSWORD", "pullpass")

	encoded, err := Resolve("quay.io", false, Parameters{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg := decode(t, encoded); cfg.Username != "puller" {
		t.Fatalf("username = %q, want scoped puller", cfg.Username)
	}

	// Push resolution must not pick up the pull scope.
	encoded, err = Resolve("quay.io", true, Parameters{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg := decode(t, encoded); cfg.Username != "general" {
		t.Fatalf("push username = %q, want general", cfg.Username)
	}
}

func TestResolveParametersBeatEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("SLIPWAY_USERNAME", "envuser")

	encoded, err := Resolve("quay.io", false, Parameters{Username: "explicit", Password: "p"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg := decode(t, encoded); cfg.Username != "explicit" {
		t.Fatalf("username = %q, want explicit", cfg.Username)
	}
}

func TestResolveConfigFile(t *testing.T) {
	dir := isolate(t)

	auth := base64.StdEncoding.EncodeToString([]byte("filer:filepass"))
	config := `{"auths":{"quay.io":{"auth":"` + auth + `"}}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	encoded, err := Resolve("quay.io", false, Parameters{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	cfg := decode(t, encoded)
	if cfg.Username != "filer" || cfg.Password != "filepass" {
		t.Fatalf("credentials = %s/%s, want filer/filepass", cfg.Username, cfg.Password)
	}
}

func TestResolveConfigFileDockerHub(t *testing.T) {
	dir := isolate(t)

	config := `{"auths":{"https://index.docker.io/v1/":{"username":"hubuser","password":"hubpass"}}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	// An empty registry means Docker Hub.
	encoded, err := Resolve("", false, Parameters{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg := decode(t, encoded); cfg.Username != "hubuser" {
		t.Fatalf("username = %q, want hubuser", cfg.Username)
	}
}

func TestResolveAnonymous(t *testing.T) {
	isolate(t)

	encoded, err := Resolve("quay.io", false, Parameters{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if encoded != "" {
		t.Fatalf("expected anonymous access, got credentials %q", encoded)
	}
}

func TestResolveCorruptConfigFile(t *testing.T) {
	dir := isolate(t)

	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve("quay.io", false, Parameters{})
	if !errors.Is(err, ErrConfigFile) {
		t.Fatalf("err = %v, want ErrConfigFile", err)
	}
}
