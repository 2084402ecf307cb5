package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/registry"
)

// Registry key Docker Hub credentials are stored under in the CLI config file.
const dockerHubKey = "https://index.docker.io/v1/"

// Credentials supplied explicitly by the caller. They take precedence over
// every other source when a username is set.
type Parameters struct {
	Username string // Registry account name.
	Password string // Registry account password or token.
}

// Resolves registry credentials and returns them in the encoded form the
// Engine API expects in its auth header.
//
// Sources are consulted in order: the explicit parameters, scoped environment
// variables (SLIPWAY_PULL_USERNAME / SLIPWAY_PUSH_USERNAME falling back to
// SLIPWAY_USERNAME, with matching *_PASSWORD variables), and finally the
// Docker CLI config file. An empty result with a nil error means anonymous
// access; only an unreadable or unparsable config file is an error.
func Resolve(reg string, push bool, params Parameters) (string, error) {
	if params.Username != "" {
		return encode(reg, params.Username, params.Password, "parameters")
	}

	if user, pass := envCredentials(push); user != "" {
		return encode(reg, user, pass, "environment")
	}

	user, pass, err := configFileCredentials(reg)
	if err != nil {
		return "", err
	}
	if user != "" {
		return encode(reg, user, pass, "docker config")
	}

	return "", nil
}

// Encodes credentials for the Engine API auth header.
func encode(reg, user, pass, source string) (string, error) {
	encoded, err := registry.EncodeAuthConfig(registry.AuthConfig{
		Username:      user,
		Password:      pass,
		ServerAddress: reg,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}

	slog.Debug("resolved registry credentials", "registry", reg, "user", user, "source", source)
	return encoded, nil
}

// Reads credentials from the environment, preferring the push or pull scope
// over the unscoped variables.
func envCredentials(push bool) (string, string) {
	scope := "PULL"
	if push {
		scope = "PUSH"
	}

	user := firstEnv("SLIPWAY_"+scope+"_USERNAME", "SLIPWAY_USERNAME")
	pass := firstEnv("SLIPWAY_"+scope+"_PASSWORD", "SLIPWAY_PASSWORD")
	return user, pass
}

// Returns the first non-empty value among the named environment variables.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Looks up credentials for a registry in the Docker CLI config file.
//
// A missing file means no credentials; a file that cannot be read or parsed
// is an error, since silently ignoring it would turn authenticated pulls into
// anonymous ones.
func configFileCredentials(reg string) (string, string, error) {
	path := configFilePath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrConfigFile, path, err)
	}

	var cfg struct {
		Auths map[string]struct {
			Auth     string `json:"auth"`
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"auths"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrConfigFile, path, err)
	}

	for _, key := range registryKeys(reg) {
		entry, ok := cfg.Auths[key]
		if !ok {
			continue
		}

		if entry.Auth != "" {
			user, pass, err := decodeAuthField(entry.Auth)
			if err != nil {
				return "", "", fmt.Errorf("%w: %s: entry %q: %w", ErrConfigFile, path, key, err)
			}
			return user, pass, nil
		}

		if entry.Username != "" {
			return entry.Username, entry.Password, nil
		}
	}

	return "", "", nil
}

// Returns the Docker CLI config file path, honoring DOCKER_CONFIG.
func configFilePath() string {
	if dir := os.Getenv("DOCKER_CONFIG"); dir != "" {
		return filepath.Join(dir, "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".docker", "config.json")
}

// Lists the config-file keys a registry may be stored under. Docker Hub
// credentials historically live under the full index URL.
func registryKeys(reg string) []string {
	if reg == "" || reg == "docker.io" || reg == "index.docker.io" {
		return []string{dockerHubKey, "docker.io", "index.docker.io"}
	}
	return []string{reg, "https://" + reg, "http://" + reg}
}

// Decodes the base64 "auth" field of a config-file entry into its
// username and password halves.
func decodeAuthField(auth string) (string, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(auth)
	if err != nil {
		return "", "", err
	}

	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", fmt.Errorf("auth field is not user:password")
	}
	return user, pass, nil
}
