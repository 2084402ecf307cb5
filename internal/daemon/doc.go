// Package daemon talks to a Docker-compatible image daemon.
//
// The [Access] interface is the contract the build workflow programs against:
// pull, build, load, tag, remove, and identity inspection. [Client] implements
// it over the Engine API, negotiating the API version with whatever daemon the
// environment points at and decoding the daemon's JSON progress streams into
// debug log lines.
//
// Example usage:
//
//	cli, err := daemon.New("")
//	if err != nil {
//	    return err
//	}
//	defer cli.Close()
//
//	id, err := cli.Build(ctx, "slipway/app:latest", "/tmp/context.tar", daemon.BuildOptions{
//	    NoCache: true,
//	})
package daemon
