package dockerfile

import "errors"

var (
	ErrParse  = errors.New("dockerfile parse failed")
	ErrNoFrom = errors.New("dockerfile has no FROM instruction")
)
