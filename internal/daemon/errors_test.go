package daemon

import (
	"errors"
	"testing"
)

func TestOperationError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &OperationError{Op: "pull", Ref: "busybox:1.36", Err: cause}

	if got := err.Error(); got != "pull busybox:1.36: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("Unwrap chain does not reach the cause")
	}

	var opErr *OperationError
	if !errors.As(error(err), &opErr) {
		t.Fatal("errors.As failed for *OperationError")
	}
	if opErr.Op != "pull" {
		t.Fatalf("Op = %q, want pull", opErr.Op)
	}
}
