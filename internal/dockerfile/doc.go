// Package dockerfile extracts build metadata from Dockerfiles.
//
// Only the minimal surface needed by the build workflow is implemented:
// finding the base image of the first FROM instruction so that it can be
// pulled before the daemon starts the build. Full Dockerfile parsing stays
// with the daemon's builder.
package dockerfile
