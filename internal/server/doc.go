// Package server implements the slipwayd daemon.
//
// The daemon listens on a Unix domain socket for JSON-encoded commands
// from the slipwayd CLI. Each connection carries a single request-response
// exchange: the client sends a newline-delimited JSON envelope, the
// server dispatches the command, and writes the result back before
// closing the connection.
//
// Supported commands include building manifests, querying daemon status,
// and initiating shutdown. Build commands are delegated to the build
// package, which runs the workflow against the Docker daemon. All build
// requests served by one daemon share a single session, so an image
// pulled for one request is not pulled again for the next.
//
// Example usage:
//
//	srv, err := server.New(server.Config{
//	    DockerHost: "unix:///var/run/docker.sock",
//	})
//	if err != nil {
//	    return err
//	}
//
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
//
//	srv.Wait()
package server
