package version

import "testing"

func TestInfo(t *testing.T) {
	origCommit := Commit
	defer func() { Commit = origCommit }()

	Commit = "unknown"
	if got := Info(); got != Version {
		t.Errorf("Info() = %q, want %q", got, Version)
	}

	Commit = "abcdef1234567890"
	if got, want := Info(), Version+" (abcdef1)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}
