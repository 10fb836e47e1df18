package ossim

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewConfigError(t *testing.T) {
	inner := fmt.Errorf("open: no such file")
	err := NewConfigError("config.Load", "missing file", inner)

	if err.Op != "config.Load" {
		t.Errorf("Op = %q, want config.Load", err.Op)
	}
	if err.Kind != KindConfig {
		t.Errorf("Kind = %q, want %q", err.Kind, KindConfig)
	}
	if !errors.Is(err, inner) {
		t.Error("expected wrapped inner error to be reachable via errors.Is")
	}
}

func TestErrorIs_MatchesByKindOnly(t *testing.T) {
	err := NewMetaDataError("metadata.Parse", "bad token", nil)
	if !errors.Is(err, ErrMetaData) {
		t.Error("expected errors.Is to match on Kind against the sentinel")
	}
	if errors.Is(err, ErrConfig) {
		t.Error("expected errors.Is to not match a different Kind")
	}
}

func TestIsKind(t *testing.T) {
	err := NewInvariantViolation("scheduler.applyInterrupt", "IoComplete for unknown pid 7")
	if !IsKind(err, KindInvariant) {
		t.Error("expected IsKind to recognize InvariantViolation")
	}
	if IsKind(err, KindConfig) {
		t.Error("expected IsKind to reject a mismatched Kind")
	}
}

func TestIsKind_WrappedError(t *testing.T) {
	base := NewConfigError("config.Load", "bad header", nil)
	wrapped := fmt.Errorf("entry point: %w", base)
	if !IsKind(wrapped, KindConfig) {
		t.Error("expected IsKind to see through fmt.Errorf wrapping via errors.As")
	}
}

func TestErrorMessage_IncludesInner(t *testing.T) {
	inner := errors.New("disk full")
	err := NewConfigError("config.Load", "write failed", inner)
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty message")
	}
	if !strings.Contains(msg, "disk full") {
		t.Errorf("message %q does not include the inner error", msg)
	}
}
