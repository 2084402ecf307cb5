package daemon

import "github.com/opencontainers/go-digest"

// Abbreviates a daemon-assigned image identifier for log output.
//
// Well-formed identifiers ("sha256:...") are shortened to the first twelve
// hex characters, matching what the daemon's own tooling prints. Anything
// else is returned unchanged.
func ShortID(id string) string {
	dgst, err := digest.Parse(id)
	if err != nil {
		return id
	}

	encoded := dgst.Encoded()
	if len(encoded) > 12 {
		return encoded[:12]
	}
	return encoded
}
