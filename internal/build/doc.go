// Package build runs the per-image build workflow: deciding whether the
// base image must be pulled, merging build arguments, producing or loading
// the build context, invoking the daemon's builder, and retiring the image
// the build superseded.
//
// A service is created once per run and shared by every image workflow.
// Base-image pulls are coordinated through the run's session, so images
// built concurrently never pull the same base twice.
//
// Example usage:
//
//	svc := build.New(client, sess, build.Options{
//	    SourceDir: ".",
//	    OutputDir: "build/slipway",
//	    AutoPull:  "on",
//	})
//
//	for _, img := range m.Images {
//	    if err := svc.Execute(ctx, img); err != nil {
//	        return err
//	    }
//	}
package build
