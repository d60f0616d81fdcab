package debugctx

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

func TestDebugWritesOnlyWhenVerbose(t *testing.T) {
	t.Parallel()

	t.Run("verbose_logger", func(t *testing.T) {
		t.Parallel()

		var lines []string
		logger := funcr.New(func(prefix, args string) {
			lines = append(lines, args)
		}, funcr.Options{Verbosity: 1})

		ctx := WithLogger(context.Background(), logger)
		if !Enabled(ctx) {
			t.Fatalf("expected debug to be enabled")
		}
		Debug(ctx, "http request", "method", "GET")

		if len(lines) != 1 || !strings.Contains(lines[0], `"method"="GET"`) {
			t.Fatalf("unexpected debug lines %#v", lines)
		}
	})

	t.Run("quiet_logger", func(t *testing.T) {
		t.Parallel()

		var lines []string
		logger := funcr.New(func(prefix, args string) {
			lines = append(lines, args)
		}, funcr.Options{})

		ctx := WithLogger(context.Background(), logger)
		Debug(ctx, "http request")
		if len(lines) != 0 {
			t.Fatalf("expected no debug lines, got %#v", lines)
		}
	})

	t.Run("no_logger", func(t *testing.T) {
		t.Parallel()

		if Enabled(context.Background()) {
			t.Fatalf("expected discard logger to be disabled")
		}
		Debug(context.Background(), "ignored")
	})
}

func TestEnsureKeepsExistingLogger(t *testing.T) {
	t.Parallel()

	var hits int
	existing := funcr.New(func(string, string) { hits++ }, funcr.Options{Verbosity: 1})
	ctx := Ensure(WithLogger(context.Background(), existing), logr.Discard())

	Debug(ctx, "kept")
	if hits != 1 {
		t.Fatalf("expected existing logger to receive the line, hits=%d", hits)
	}

	fallbackCtx := Ensure(context.Background(), existing)
	Debug(fallbackCtx, "fallback")
	if hits != 2 {
		t.Fatalf("expected fallback logger to be attached, hits=%d", hits)
	}
}
