package cpgerr

import (
	"errors"
	"testing"
)

func TestConfigurationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ConfigurationError{Component: "scheduler", Message: "bad", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("expected errors.Is to unwrap to inner error")
	}
}

func TestNewConfigurationErrorFormats(t *testing.T) {
	err := NewConfigurationError("scheduler", "too many %s passes", "first")
	if err.Message != "too many first passes" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestErrorKindsAreDistinguishable(t *testing.T) {
	var err error = &ParseError{File: "a.go", Err: errors.New("eof")}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected errors.As to match *ParseError")
	}

	err = &Cancelled{Phase: "passing:2"}
	var ce *Cancelled
	if !errors.As(err, &ce) || ce.Phase != "passing:2" {
		t.Fatalf("expected Cancelled to round-trip its phase")
	}
}
