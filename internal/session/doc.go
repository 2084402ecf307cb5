// Package session holds the state shared across all image builds of one run.
//
// A [Session] wraps a shared property [Store] and the run's pull cache: the
// set of image references already fetched, kept so that multiple builds based
// on the same image pull it once. The cache is serialized into a single store
// entry on every update, and every access runs under the session mutex, which
// makes the session safe to share between build workflows running in parallel.
//
// Example usage:
//
//	sess := session.New(session.NewMemoryStore())
//
//	err := sess.CoordinatePull("busybox:1.36",
//		func(pulled bool) (bool, error) { return !pulled, nil },
//		func() error { return client.Pull(ctx, "busybox:1.36", "", "") },
//	)
package session
