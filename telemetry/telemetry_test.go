package telemetry

import "testing"

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := NewLogger("not-a-level"); err == nil {
		t.Fatalf("expected an error for an invalid log level")
	}
}

func TestNewLoggerAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if _, err := NewLogger(level); err != nil {
			t.Fatalf("NewLogger(%q): %v", level, err)
		}
	}
}

func TestNewRunIDIsUnique(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == b {
		t.Fatalf("NewRunID produced the same ID twice: %s", a)
	}
	if a == "" {
		t.Fatalf("NewRunID returned an empty string")
	}
}
