package manifest

import "testing"

func TestParseCleanupMode(t *testing.T) {
	tests := []struct {
		token string
		want  CleanupMode
	}{
		{token: "", want: CleanupTry},
		{token: "try", want: CleanupTry},
		{token: "true", want: CleanupTry},
		{token: "none", want: CleanupNone},
		{token: "false", want: CleanupNone},
		{token: "remove", want: CleanupRemove},
	}

	for _, tt := range tests {
		got, err := ParseCleanupMode(tt.token)
		if err != nil {
			t.Fatalf("ParseCleanupMode(%q) failed: %v", tt.token, err)
		}
		if got != tt.want {
			t.Errorf("ParseCleanupMode(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}

	if _, err := ParseCleanupMode("sometimes"); err == nil {
		t.Fatal("ParseCleanupMode accepted unknown token")
	}
}

func TestCleanupModeRemovalRequested(t *testing.T) {
	if CleanupNone.RemovalRequested() {
		t.Fatal("none requests removal")
	}
	if !CleanupTry.RemovalRequested() {
		t.Fatal("try does not request removal")
	}
	if !CleanupRemove.RemovalRequested() {
		t.Fatal("remove does not request removal")
	}
}

func TestCleanupModeString(t *testing.T) {
	for mode, want := range map[CleanupMode]string{
		CleanupTry:    "try",
		CleanupNone:   "none",
		CleanupRemove: "remove",
	} {
		if got := mode.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
