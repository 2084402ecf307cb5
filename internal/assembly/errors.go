package assembly

import "errors"

var (
	ErrArchive = errors.New("archive creation failed")
	ErrCopy    = errors.New("copy failed")
)
