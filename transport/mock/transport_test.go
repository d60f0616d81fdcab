package mock

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/transport"
)

func TestRoutesWinOverQueue(t *testing.T) {
	t.Parallel()

	mock := New().
		Handle(http.MethodGet, "/employees/1", func(*transport.Request) (*transport.Response, error) {
			return Respond(http.StatusOK, `{"id":1}`), nil
		}).
		Reply(http.StatusCreated, `{"id":2}`)

	routed, err := mock.Execute(context.Background(), &transport.Request{Method: "get", Path: "/employees/1"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if routed.StatusCode != http.StatusOK {
		t.Fatalf("expected routed response, got %d", routed.StatusCode)
	}

	queued, err := mock.Execute(context.Background(), &transport.Request{Method: http.MethodPost, Path: "/employees"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if queued.StatusCode != http.StatusCreated || string(queued.Body) != `{"id":2}` {
		t.Fatalf("unexpected queued response: %d %s", queued.StatusCode, queued.Body)
	}

	missing, err := mock.Execute(context.Background(), &transport.Request{Method: http.MethodGet, Path: "/other"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 when nothing matches, got %d", missing.StatusCode)
	}

	if got := len(mock.Requests()); got != 3 {
		t.Fatalf("expected 3 recorded requests, got %d", got)
	}
	if mock.Last().Path != "/other" {
		t.Fatalf("unexpected last request %q", mock.Last().Path)
	}
}

func TestFailAndCanceledContext(t *testing.T) {
	t.Parallel()

	mock := New().Fail(errors.New("connection refused"))
	if _, err := mock.Execute(context.Background(), &transport.Request{Method: http.MethodGet}); !faults.IsCategory(err, faults.TransportError) {
		t.Fatalf("expected transport error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := mock.Execute(ctx, &transport.Request{Method: http.MethodGet}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", err)
	}
}

func TestReplyJSONSetsContentType(t *testing.T) {
	t.Parallel()

	mock := New().ReplyJSON(http.StatusOK, map[string]any{"name": "Ada"})
	response, err := mock.Execute(context.Background(), &transport.Request{Method: http.MethodGet})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if response.Header.Get("Content-Type") != "application/json" || string(response.Body) != `{"name":"Ada"}` {
		t.Fatalf("unexpected response %v %s", response.Header, response.Body)
	}
}
