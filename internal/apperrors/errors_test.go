package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("match %s not found", "abc"), KindNotFound},
		{"unauthorized", Unauthorized("nope"), KindUnauthorized},
		{"invalid state", InvalidState("already %s", "claimed"), KindInvalidState},
		{"external service", ExternalService("upstream", errors.New("boom")), KindExternalService},
		{"plain error", errors.New("plain"), KindUnknown},
		{"wrapped", fmt.Errorf("context: %w", NotFound("gone")), KindNotFound},
		{"nil", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), 404},
		{Unauthorized("x"), 403},
		{InvalidState("x"), 409},
		{ExternalService("x", nil), 502},
		{errors.New("plain"), 500},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := ExternalService("assistant chat failed", errors.New("status 500"))
	if err.Error() != "assistant chat failed: status 500" {
		t.Errorf("Error() = %q", err.Error())
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("errors.As failed")
	}
	if e.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}
}
