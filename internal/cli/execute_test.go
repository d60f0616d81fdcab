package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/crmarques/restrecord/faults"
)

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain_error", err: errors.New("boom"), want: 1},
		{name: "validation", err: faults.NewTypedError(faults.ValidationError, "invalid", nil), want: 2},
		{name: "invalid_method", err: faults.NewTypedError(faults.InvalidMethodError, "TRACE", nil), want: 2},
		{name: "not_found", err: faults.NewTypedError(faults.NotFoundError, "missing", nil), want: 3},
		{name: "auth", err: faults.NewTypedError(faults.AuthError, "auth", nil), want: 4},
		{name: "server", err: faults.NewTypedError(faults.ServerError, "500", nil), want: 5},
		{name: "transport", err: faults.NewTypedError(faults.TransportError, "net", nil), want: 6},
		{name: "wrapped_transport", err: fmt.Errorf("delete: %w", faults.NewTypedError(faults.TransportError, "net", nil)), want: 6},
		{name: "internal", err: faults.NewTypedError(faults.InternalError, "internal", nil), want: 1},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeForError(testCase.err); got != testCase.want {
				t.Fatalf("ExitCodeForError(%v) = %d, want %d", testCase.err, got, testCase.want)
			}
		})
	}
}
