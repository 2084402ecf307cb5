package manifest

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Governs what happens to the image an entry superseded after a successful
// rebuild.
//
// The zero value is [CleanupTry], the default: try to remove the old image
// and degrade to a warning when the daemon refuses.
type CleanupMode int

const (

	// Attempt removal; a failure is logged and the build still succeeds.
	CleanupTry CleanupMode = iota

	// Leave superseded images alone.
	CleanupNone

	// Attempt removal; a failure fails the build.
	CleanupRemove
)

// Reports whether this mode wants superseded images removed at all.
func (m CleanupMode) RemovalRequested() bool {
	return m != CleanupNone
}

func (m CleanupMode) String() string {
	switch m {
	case CleanupNone:
		return "none"
	case CleanupRemove:
		return "remove"
	default:
		return "try"
	}
}

// Parses a cleanup mode token. "true" and "false" are accepted as aliases
// for "try" and "none"; the empty string is the default mode.
func ParseCleanupMode(s string) (CleanupMode, error) {
	switch s {
	case "", "try", "true":
		return CleanupTry, nil
	case "none", "false":
		return CleanupNone, nil
	case "remove":
		return CleanupRemove, nil
	default:
		return 0, fmt.Errorf("%w: unknown cleanup mode %q", ErrManifest, s)
	}
}

func (m *CleanupMode) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}

	mode, err := ParseCleanupMode(raw)
	if err != nil {
		return err
	}

	*m = mode
	return nil
}

func (m CleanupMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *CleanupMode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	mode, err := ParseCleanupMode(raw)
	if err != nil {
		return err
	}

	*m = mode
	return nil
}

func (m CleanupMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
