// Package manifest defines the declarative build configuration.
//
// A manifest is a YAML file declaring the images a run builds, project-level
// properties, and the source and output directories. Each image entry carries
// a build spec: either an archive to load verbatim, or generative inputs (a
// Dockerfile context or an assembly descriptor) for the daemon's builder.
// Loading is strict and validates everything up front, so configuration
// mistakes surface before any image work begins.
//
// Example manifest:
//
//	output-dir: build/slipway
//	properties:
//	  build.arg.HTTP_PROXY: http://proxy.internal:3128
//	images:
//	  - name: quay.io/slipway/app:1.0
//	    build:
//	      dockerfile: Dockerfile
//	      context: app
//	      cleanup: remove
//	  - name: slipway/data
//	    build:
//	      assembly:
//	        dir: dist
//	        entrypoint: ["/slipway/run"]
package manifest
