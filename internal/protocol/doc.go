// Package protocol defines the wire format between the slipwayd CLI and the
// daemon.
//
// Every message is a single JSON envelope carrying a command name and an
// optional payload, sent newline-delimited over the daemon's Unix socket.
// Each connection holds one request-response exchange: the client sends a
// request envelope, the daemon answers with an "ok" or "error" envelope and
// closes the connection.
//
// Example usage:
//
//	data, err := protocol.Encode(protocol.CmdBuild, &protocol.BuildRequest{
//	    Manifest: m,
//	})
//	if err != nil {
//	    return err
//	}
//
//	env, payload, err := protocol.Decode(line)
//	if err != nil {
//	    return err
//	}
//	if env.Command == protocol.CmdError {
//	    result, _ := protocol.DecodePayload[protocol.ErrorResult](payload)
//	    ...
//	}
package protocol
