// Package query decides when images must be pulled.
//
// A [Service] combines the run's pull policy ("on", "off", or "always") with
// what the daemon actually has, and resolves image names to the identifiers
// the daemon assigned them. The build workflow consults it before every pull
// and after every build.
package query
