// Package http implements the transport contract over net/http.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/debugctx"
	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/internal/providers/shared/tlsconfig"
	"github.com/crmarques/restrecord/transport"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 16 << 20

var idempotentMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodHead:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
}

type Option func(*options)

type options struct {
	client     *http.Client
	registerer prometheus.Registerer
	fs         afero.Fs
}

// WithFs sets the filesystem TLS files are read from.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithHTTPClient replaces the default client. Its timeout and TLS settings
// are left untouched.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithRegisterer enables request metrics on registerer.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

type Transport struct {
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	metrics    *metrics
}

var _ transport.Transport = (*Transport)(nil)

func NewTransport(settings config.Transport, opts ...Option) (*Transport, error) {
	resolved := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}

	client := resolved.client
	if client == nil {
		timeout := settings.Timeout
		if timeout <= 0 {
			timeout = config.DefaultTransportTimeout
		}
		client = &http.Client{Timeout: timeout}

		tlsConfig, err := tlsconfig.Build(resolved.fs, settings.TLS)
		if err != nil {
			return nil, err
		}
		if tlsConfig != nil {
			base := http.DefaultTransport.(*http.Transport).Clone()
			base.TLSClientConfig = tlsConfig
			client.Transport = base
		}
	}

	t := &Transport{client: client, maxRetries: settings.MaxRetries}
	if t.maxRetries < 0 {
		t.maxRetries = 0
	}
	if settings.RequestsPerSecond > 0 {
		burst := settings.Burst
		if burst <= 0 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), burst)
	}
	if resolved.registerer != nil {
		m, err := newMetrics(resolved.registerer)
		if err != nil {
			return nil, err
		}
		t.metrics = m
	}
	return t, nil
}

// Execute sends request. Status codes are returned as-is; only network and
// encoding failures become errors. Network failures on idempotent verbs are
// retried with exponential backoff up to the configured retry count.
func (t *Transport) Execute(ctx context.Context, request *transport.Request) (*transport.Response, error) {
	if request == nil {
		return nil, validationError("request is required", nil)
	}
	target, err := resolveRequestURL(request.BaseURI, request.Path, request.Query)
	if err != nil {
		return nil, err
	}

	attempt := 0
	operation := func() (*transport.Response, error) {
		attempt++
		response, err := t.send(ctx, request, target.String(), attempt)
		if err == nil {
			return response, nil
		}
		if _, ok := idempotentMethods[request.Method]; !ok || faults.CategoryOf(err) != "" {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	var policy backoff.BackOff = &backoff.StopBackOff{}
	if t.maxRetries > 0 {
		policy = backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(t.maxRetries))
	}
	response, err := backoff.RetryWithData(operation, backoff.WithContext(policy, ctx))
	if err != nil {
		if faults.CategoryOf(err) != "" {
			return nil, err
		}
		debugctx.Debug(ctx, "http request failed", "method", request.Method, "url", redactURL(target), "attempts", attempt, "error", err.Error())
		return nil, transportError("remote request failed", err)
	}
	return response, nil
}

func (t *Transport) send(ctx context.Context, request *transport.Request, target string, attempt int) (*transport.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, transportError("rate limiter wait failed", err)
		}
	}

	body, contentType := encodeBody(request)
	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, target, body)
	if err != nil {
		return nil, internalError("failed to create remote request", err)
	}
	for key, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	if contentType != "" {
		httpRequest.Header.Set("Content-Type", contentType)
	}
	if request.BasicAuth != nil {
		httpRequest.SetBasicAuth(request.BasicAuth.Username, request.BasicAuth.Password)
	}

	debugctx.Debug(ctx, "http request", "method", request.Method, "url", redactURL(httpRequest.URL), "attempt", attempt, "fields", len(request.Fields), "files", len(request.Files))

	started := time.Now()
	response, err := t.client.Do(httpRequest)
	if err != nil {
		t.metrics.observe(request.Method, 0, time.Since(started))
		return nil, err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	t.metrics.observe(request.Method, response.StatusCode, time.Since(started))
	if err != nil {
		return nil, transportError("failed to read remote response body", err)
	}

	debugctx.Debug(ctx, "http response", "method", request.Method, "url", redactURL(httpRequest.URL), "status", response.StatusCode, "bytes", len(payload))

	return &transport.Response{
		StatusCode: response.StatusCode,
		Header:     response.Header.Clone(),
		Body:       payload,
	}, nil
}
