package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsSurviveWrapping(t *testing.T) {
	notFound := fmt.Errorf("order %w", ErrNotFound)
	if err := fmt.Errorf("set status: %w", notFound); !errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		t.Fatalf("err=%v", err)
	}
}

func TestMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: Invalid status", ErrValidation), "Invalid status"},
		{fmt.Errorf("append item: %w", fmt.Errorf("%w: qty must be positive", ErrValidation)), "qty must be positive"},
		{ErrValidation, "validation failed"},
		{errors.New("boom"), "boom"},
	}
	for _, tc := range cases {
		if got := Message(tc.err); got != tc.want {
			t.Errorf("Message(%q)=%q, want %q", tc.err, got, tc.want)
		}
	}
}
