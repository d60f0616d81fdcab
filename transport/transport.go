// Package transport defines the values exchanged with the wire and the
// contract an HTTP implementation satisfies.
package transport

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/crmarques/restrecord/query"
)

// Transport performs one round trip. Implementations report network failures
// as errors and never turn status codes into errors.
type Transport interface {
	Execute(ctx context.Context, request *Request) (*Response, error)
}

// Func adapts a function into a Transport.
type Func func(ctx context.Context, request *Request) (*Response, error)

func (f Func) Execute(ctx context.Context, request *Request) (*Response, error) {
	return f(ctx, request)
}

type Credentials struct {
	Username string
	Password string
}

// File is one multipart file part. Open defaults to reading Path from the
// local disk.
type File struct {
	Field string
	Path  string
	Open  func() (io.ReadCloser, error)
}

// Reader opens the file contents.
func (f File) Reader() (io.ReadCloser, error) {
	if f.Open != nil {
		return f.Open()
	}
	return os.Open(f.Path)
}

// Request is a fully built outgoing call. Path may carry unresolved
// placeholders only when the caller chose not to bind them.
type Request struct {
	BaseURI   string
	Method    string
	Path      string
	Query     []query.Param
	Header    http.Header
	Fields    []query.Param
	Files     []File
	BasicAuth *Credentials
}

// HasBody reports whether fields or files must be encoded into a body.
func (r *Request) HasBody() bool {
	return len(r.Fields) > 0 || len(r.Files) > 0
}

// Field returns the first body field with key.
func (r *Request) Field(key string) (string, bool) {
	for _, field := range r.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}
