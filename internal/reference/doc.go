// Package reference parses and derives image names.
//
// An image name has the form [registry/]repository[:tag][@digest]. Parsing
// validates the name against the distribution reference grammar and splits it
// into its parts; all derivations (registry qualification, tag defaulting) are
// pure and leave the original parse intact, so callers can keep using the name
// exactly as the user wrote it while talking to the daemon in fully qualified
// terms.
//
// Example usage:
//
//	name, err := reference.Parse("quay.io/slipway/base:1.2")
//	if err != nil {
//	    return err
//	}
//
//	name.Registry()       // "quay.io"
//	name.Repository()     // "slipway/base"
//	name.Tag()            // "1.2"
//	name.FullName("")     // "quay.io/slipway/base:1.2"
package reference
