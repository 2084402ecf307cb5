package query

import "errors"

var (
	ErrPolicy       = errors.New("unknown pull policy")
	ErrImageMissing = errors.New("image not available")
)
