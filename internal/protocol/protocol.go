package protocol

import (
	"encoding/json"
	"fmt"
)

// Command names a protocol operation or response kind.
type Command string

const (

	// Requests accepted by the daemon.
	CmdBuild    Command = "build"
	CmdStatus   Command = "status"
	CmdShutdown Command = "shutdown"

	// Responses sent back to the client.
	CmdOK    Command = "ok"
	CmdError Command = "error"
)

// Envelope frames every message on the wire: a command naming the operation
// and an optional JSON payload belonging to it.
type Envelope struct {
	Command Command         `json:"command"`           // Operation or response kind.
	Payload json.RawMessage `json:"payload,omitempty"` // Command-specific body.
}

// Encodes a command and payload into a JSON envelope.
func Encode(cmd Command, payload any) ([]byte, error) {
	env := Envelope{Command: cmd}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		env.Payload = data
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

// Decodes a JSON envelope, returning it together with its raw payload.
func Decode(data []byte) (*Envelope, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if env.Command == "" {
		return nil, nil, fmt.Errorf("%w: missing command", ErrDecode)
	}
	return &env, env.Payload, nil
}

// Decodes a raw payload into a concrete request or result type.
func DecodePayload[T any](payload json.RawMessage) (*T, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: missing payload", ErrDecode)
	}

	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &v, nil
}
