package daemon

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/docker/docker/pkg/jsonmessage"
)

// Consumes a daemon JSON progress stream until it ends.
//
// Progress lines are logged at debug level. Aux payloads (the builder reports
// the final image identifier this way) are forwarded to the aux callback when
// one is given. An in-stream error message terminates the drain and is
// returned as the stream's result.
func drainStream(r io.Reader, aux func(json.RawMessage)) error {
	dec := json.NewDecoder(r)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if msg.Error != nil {
			return msg.Error
		}

		if msg.Aux != nil {
			if aux != nil {
				aux(*msg.Aux)
			}
			continue
		}

		if line := streamLine(msg); line != "" {
			slog.Debug(line)
		}
	}
}

// Renders a progress message as a single log line. Messages that only carry
// progress bars render empty and are skipped.
func streamLine(msg jsonmessage.JSONMessage) string {
	if msg.Stream != "" {
		return strings.TrimSpace(msg.Stream)
	}
	if msg.Status != "" {
		if msg.ID != "" {
			return msg.ID + ": " + msg.Status
		}
		return msg.Status
	}
	return ""
}
