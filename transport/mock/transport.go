// Package mock provides an in-memory transport that records requests and
// answers from routes or a reply queue.
package mock

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/transport"
)

// Handler answers one request.
type Handler func(request *transport.Request) (*transport.Response, error)

// Transport is safe for concurrent use. Routes are matched on "METHOD path"
// first; otherwise the next queued reply is used; otherwise it answers 404.
type Transport struct {
	mu       sync.Mutex
	routes   map[string]Handler
	queue    []Handler
	requests []*transport.Request
}

var _ transport.Transport = (*Transport)(nil)

func New() *Transport {
	return &Transport{routes: map[string]Handler{}}
}

// Handle routes method and path to handler.
func (t *Transport) Handle(method string, path string, handler Handler) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[routeKey(method, path)] = handler
	return t
}

// Reply queues a fixed response.
func (t *Transport) Reply(status int, body string) *Transport {
	return t.Enqueue(func(*transport.Request) (*transport.Response, error) {
		return Respond(status, body), nil
	})
}

// ReplyJSON queues a JSON-encoded response.
func (t *Transport) ReplyJSON(status int, value any) *Transport {
	return t.Enqueue(func(*transport.Request) (*transport.Response, error) {
		return RespondJSON(status, value)
	})
}

// Fail queues a transport failure.
func (t *Transport) Fail(err error) *Transport {
	return t.Enqueue(func(*transport.Request) (*transport.Response, error) {
		return nil, faults.NewTypedError(faults.TransportError, "mock transport failure", err)
	})
}

func (t *Transport) Enqueue(handler Handler) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, handler)
	return t
}

func (t *Transport) Execute(ctx context.Context, request *transport.Request) (*transport.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, faults.NewTypedError(faults.TransportError, "request canceled", err)
	}

	t.mu.Lock()
	t.requests = append(t.requests, request)
	handler, ok := t.routes[routeKey(request.Method, request.Path)]
	if !ok && len(t.queue) > 0 {
		handler = t.queue[0]
		t.queue = t.queue[1:]
		ok = true
	}
	t.mu.Unlock()

	if !ok {
		return Respond(http.StatusNotFound, ""), nil
	}
	return handler(request)
}

// Requests returns every request seen so far.
func (t *Transport) Requests() []*transport.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*transport.Request(nil), t.requests...)
}

// Last returns the most recent request or nil.
func (t *Transport) Last() *transport.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return nil
	}
	return t.requests[len(t.requests)-1]
}

func Respond(status int, body string) *transport.Response {
	return &transport.Response{StatusCode: status, Header: http.Header{}, Body: []byte(body)}
}

func RespondJSON(status int, value any) (*transport.Response, error) {
	body, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	response := Respond(status, "")
	response.Header.Set("Content-Type", "application/json")
	response.Body = body
	return response, nil
}

func routeKey(method string, path string) string {
	return strings.ToUpper(strings.TrimSpace(method)) + " " + strings.TrimSpace(path)
}
