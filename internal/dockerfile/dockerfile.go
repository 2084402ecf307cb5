package dockerfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Extracts the base image of the first FROM instruction in a Dockerfile.
//
// ARG instructions that precede the first FROM are collected so that a
// parameterized base (FROM ${BASE_IMAGE:-busybox}) resolves to its default.
// Flags such as --platform and a trailing stage alias (AS builder) are
// ignored. Errors cover unreadable files and files without a usable FROM;
// callers that only need a pull hint treat any error as "base unknown".
func ExtractBaseImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer f.Close()

	args := make(map[string]string)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Join continuation lines before interpreting the instruction.
		for strings.HasSuffix(line, `\`) && scanner.Scan() {
			line = strings.TrimSuffix(line, `\`) + " " + strings.TrimSpace(scanner.Text())
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "ARG":
			collectArg(fields[1:], args)
		case "FROM":
			return baseFrom(fields[1:], args, path)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	return "", fmt.Errorf("%w: %s", ErrNoFrom, path)
}

// Records ARG declarations of the form NAME or NAME=default.
func collectArg(fields []string, args map[string]string) {
	for _, field := range fields {
		name, value, _ := strings.Cut(field, "=")
		args[name] = strings.Trim(value, `"'`)
	}
}

// Resolves the image operand of a FROM instruction.
func baseFrom(fields []string, args map[string]string, path string) (string, error) {
	for _, field := range fields {
		if strings.HasPrefix(field, "--") {
			continue // Flags like --platform precede the image.
		}

		base := expandArgs(field, args)
		if base == "" {
			return "", fmt.Errorf("%w: %s: FROM resolves to an empty image", ErrParse, path)
		}
		return base, nil
	}

	return "", fmt.Errorf("%w: %s: FROM has no image operand", ErrParse, path)
}

// Substitutes ${NAME}, ${NAME:-default}, and $NAME occurrences from the
// collected ARG declarations. Unknown names expand to their inline default,
// or to the empty string when none is given.
func expandArgs(s string, args map[string]string) string {
	return os.Expand(s, func(name string) string {
		name, def, hasDefault := strings.Cut(name, ":-")
		if value := args[name]; value != "" {
			return value
		}
		if hasDefault {
			return def
		}
		return ""
	})
}
