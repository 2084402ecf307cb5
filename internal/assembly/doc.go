// Package assembly produces build-context archives for image builds.
//
// A producer works in one of two modes. Dockerfile builds tar a
// user-provided context directory, honoring .dockerignore patterns.
// Assembled builds collect a host directory into a staging area, synthesize
// a Dockerfile around it, and tar the result.
//
// Example usage:
//
//	producer := assembly.NewProducer(assembly.Params{
//		SourceDir: "/work/src",
//		OutputDir: "/work/build/slipway",
//	})
//
//	path, err := producer.Create("registry.example.com/app:1.2", spec)
//	if err != nil {
//		return err
//	}
//
// The returned path names a tar archive ready to stream to the daemon's
// build endpoint.
package assembly
