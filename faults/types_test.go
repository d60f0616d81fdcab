package faults

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(ValidationError, "invalid input", nil)
	if !IsCategory(err, ValidationError) {
		t.Fatalf("expected validation category match")
	}
	if IsCategory(err, NotFoundError) {
		t.Fatalf("expected not-found category mismatch")
	}

	wrapped := errors.New("wrap: " + err.Error())
	if IsCategory(wrapped, ValidationError) {
		t.Fatalf("plain wrapped string error must not match typed category")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, ValidationError) {
		t.Fatalf("expected category match through errors.Join")
	}
}

func TestTypedErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  *TypedError
		want string
	}{
		{name: "message_and_cause", err: NewTypedError(TransportError, "request failed", cause), want: "request failed: connection refused"},
		{name: "message_only", err: NewTypedError(InvalidMethodError, "unsupported method", nil), want: "unsupported method"},
		{name: "cause_only", err: NewTypedError(TransportError, "", cause), want: "connection refused"},
		{name: "category_only", err: NewTypedError(ServerError, "", nil), want: "ServerError"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("find employee: %w", NewTypedError(ServerError, "status 500", nil))
	if got := CategoryOf(err); got != ServerError {
		t.Fatalf("CategoryOf() = %q, want %q", got, ServerError)
	}
	if got := CategoryOf(errors.New("plain")); got != "" {
		t.Fatalf("CategoryOf(plain) = %q, want empty", got)
	}
	if !errors.Is(NewTypedError(TransportError, "x", errCanceled), errCanceled) {
		t.Fatalf("expected Unwrap to expose cause")
	}
}

var errCanceled = errors.New("context canceled")
