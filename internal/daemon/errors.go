package daemon

import (
	"errors"
	"fmt"
)

var errMissingID = errors.New("daemon reported no image id")

// Describes a failed daemon operation.
//
// Op names the operation (pull, build, load, tag, remove, inspect), Ref the
// image reference or identifier it targeted, and Err carries the underlying
// daemon or transport cause.
type OperationError struct {
	Op  string
	Ref string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Ref, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
