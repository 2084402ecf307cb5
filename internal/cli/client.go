package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/slipwayhq/slipwayd/internal/paths"
	"github.com/slipwayhq/slipwayd/internal/protocol"
)

// How long a dial to the daemon socket may take before the daemon is
// considered unreachable.
const dialTimeout = 5 * time.Second

// Sends one command to a running daemon and returns the response payload.
//
// Opens a connection to the Unix socket, writes a single newline-delimited
// JSON envelope, and reads one envelope back. An error response from the
// daemon is translated into an error return.
func request(socketPath string, cmd protocol.Command, payload any) (json.RawMessage, error) {
	if socketPath == "" {
		socketPath = paths.Socket()
	}

	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: no daemon reachable at %s: %w", ErrClient, socketPath, err)
	}
	defer conn.Close()

	data, err := protocol.Encode(cmd, payload)
	if err != nil {
		return nil, err
	}
	data = append(data, byte(10))

	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClient, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes(byte(10))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClient, err)
	}

	env, body, err := protocol.Decode(line)
	if err != nil {
		return nil, err
	}

	if env.Command == protocol.CmdError {
		res, err := protocol.DecodePayload[protocol.ErrorResult](body)
		if err != nil {
			return nil, fmt.Errorf("%w: daemon returned an unreadable error", ErrClient)
		}
		return nil, fmt.Errorf("%w: %s", ErrClient, res.Message)
	}

	return body, nil
}
