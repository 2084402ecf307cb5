// Package auth resolves registry credentials for daemon operations.
//
// Credentials come from explicit parameters, scoped environment variables, or
// the Docker CLI config file, in that order, and are returned pre-encoded for
// the Engine API's registry auth header. Absence of credentials is not an
// error; most pulls are anonymous.
package auth
