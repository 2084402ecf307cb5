package build

import (
	"context"
	"errors"
	"testing"

	"github.com/slipwayhq/slipwayd/internal/manifest"
)

func TestAttemptRemoval(t *testing.T) {
	boom := errors.New("image in use")

	tests := []struct {
		name      string
		mode      manifest.CleanupMode
		id        string
		removeErr error
		want      OutcomeState
		wantCause bool
	}{
		{
			name: "none skips",
			mode: manifest.CleanupNone,
			id:   "sha256:old",
			want: RemovalSkipped,
		},
		{
			name: "empty id skips",
			mode: manifest.CleanupTry,
			want: RemovalSkipped,
		},
		{
			name: "try removes",
			mode: manifest.CleanupTry,
			id:   "sha256:old",
			want: Removed,
		},
		{
			name:      "try tolerates failure",
			mode:      manifest.CleanupTry,
			id:        "sha256:old",
			removeErr: boom,
			want:      RemovalTolerated,
			wantCause: true,
		},
		{
			name: "remove removes",
			mode: manifest.CleanupRemove,
			id:   "sha256:old",
			want: Removed,
		},
		{
			name:      "remove fails",
			mode:      manifest.CleanupRemove,
			id:        "sha256:old",
			removeErr: boom,
			want:      RemovalFailed,
			wantCause: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDaemon()
			d.removeErr = tt.removeErr
			svc := newService(t, d, Options{})

			out := svc.attemptRemoval(context.Background(), tt.mode, tt.id)
			if out.State != tt.want {
				t.Fatalf("state = %v, want %v", out.State, tt.want)
			}
			if tt.wantCause && !errors.Is(out.Cause, boom) {
				t.Errorf("cause = %v, want %v", out.Cause, boom)
			}
			if !tt.wantCause && out.Cause != nil {
				t.Errorf("cause = %v, want nil", out.Cause)
			}

			wantRemoves := 0
			if tt.want != RemovalSkipped {
				wantRemoves = 1
			}
			if len(d.removes) != wantRemoves {
				t.Errorf("removes = %v, want %d attempt(s)", d.removes, wantRemoves)
			}
		})
	}
}

func TestOutcomeStateString(t *testing.T) {
	tests := []struct {
		state OutcomeState
		want  string
	}{
		{RemovalSkipped, "skipped"},
		{Removed, "removed"},
		{RemovalTolerated, "tolerated"},
		{RemovalFailed, "failed"},
		{OutcomeState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
