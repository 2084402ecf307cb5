package cli

import "errors"

var (
	ErrClient = errors.New("daemon request failed")
)
