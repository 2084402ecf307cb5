package build

import (
	"maps"
	"strings"
)

// Prefix marking a property as a build argument. The prefix is stripped to
// yield the argument name.
const ArgPropertyPrefix = "build.arg."

// Merges build arguments from all four sources into one mapping.
//
// Precedence, lowest to highest: caller-supplied arguments, prefixed
// manifest properties, prefixed command-line properties, and the image's
// own declared arguments. A later source overwrites earlier values key by
// key, so an image's declared arguments can never be overridden.
func ResolveArgs(callerArgs, projectProps, globalProps, imageArgs map[string]string) map[string]string {
	merged := make(map[string]string)

	maps.Copy(merged, callerArgs)
	addPrefixedArgs(merged, projectProps)
	addPrefixedArgs(merged, globalProps)
	maps.Copy(merged, imageArgs)

	return merged
}

// Extracts prefixed build arguments from a property map. Properties with
// empty values are dropped.
func addPrefixedArgs(dest, props map[string]string) {
	for key, value := range props {
		name, ok := strings.CutPrefix(key, ArgPropertyPrefix)
		if !ok || name == "" || value == "" {
			continue
		}
		dest[name] = value
	}
}
