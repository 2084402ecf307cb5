package reference

import "errors"

var (
	ErrInvalidName = errors.New("invalid image name")
)
