// Package record maps a remote REST resource onto local entities.
//
// A Client is built once from a config.Resource and is safe for concurrent
// use. Entities returned by a Client are single-owner values.
package record

import (
	"context"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"github.com/crmarques/restrecord/attribute"
	"github.com/crmarques/restrecord/collection"
	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/debugctx"
	httptransport "github.com/crmarques/restrecord/internal/providers/transport/http"
	"github.com/crmarques/restrecord/query"
	"github.com/crmarques/restrecord/request"
	"github.com/crmarques/restrecord/response"
	"github.com/crmarques/restrecord/transport"
	"github.com/crmarques/restrecord/uri"
)

type Option func(*options)

type options struct {
	transport  transport.Transport
	fs         afero.Fs
	logger     logr.Logger
	registerer prometheus.Registerer
	resourceOf any
}

// WithTransport replaces the default net/http transport.
func WithTransport(t transport.Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithFs sets the filesystem used for scratch files.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger is used when the call context carries no logger.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers request metrics of the default transport.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

// WithResourceOf derives the resource name from the type of v when the
// configuration leaves it empty.
func WithResourceOf(v any) Option {
	return func(o *options) {
		o.resourceOf = v
	}
}

type Client struct {
	cfg          config.Resource
	resolver     *uri.Resolver
	builder      *request.Builder
	interpreter  *response.Interpreter
	transport    transport.Transport
	fs           afero.Fs
	logger       logr.Logger
	names        query.Names
	replacements uri.Replacements
}

func NewClient(cfg config.Resource, opts ...Option) (*Client, error) {
	resolved := options{fs: afero.NewOsFs(), logger: logr.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}

	normalized := cfg.WithDefaults()
	if normalized.Name == "" && resolved.resourceOf != nil {
		normalized.Name = uri.NameOf(resolved.resourceOf)
	}
	if normalized.Name == "" {
		return nil, validationError("resource name is required", nil)
	}
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	nesting, err := uri.ParseNesting(normalized.NestedUnder)
	if err != nil {
		return nil, validationError("invalid nested-under for resource "+normalized.Name, err)
	}
	resolver, err := uri.NewResolver(normalized.Name, uri.WithURI(normalized.URI), uri.WithNesting(nesting))
	if err != nil {
		return nil, validationError("invalid resource "+normalized.Name, err)
	}

	fs := resolved.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	t := resolved.transport
	if t == nil {
		transportOpts := []httptransport.Option{httptransport.WithFs(fs)}
		if resolved.registerer != nil {
			transportOpts = append(transportOpts, httptransport.WithRegisterer(resolved.registerer))
		}
		t, err = httptransport.NewTransport(*normalized.Transport, transportOpts...)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		cfg:         normalized,
		resolver:    resolver,
		builder:     request.NewBuilder(normalized),
		interpreter: response.NewInterpreter(normalized.Format),
		transport:   t,
		fs:          fs,
		logger:      resolved.logger,
		names:       searchNames(normalized.Search),
	}, nil
}

// Config returns a copy of the normalized configuration.
func (c *Client) Config() config.Resource {
	return c.cfg.Clone()
}

func (c *Client) ResourceName() string {
	return c.resolver.ResourceName()
}

// Under returns a client bound to an ancestor placeholder, for example
// Under(":company_id", 7). Bindings apply to finders, entities and raw paths.
func (c *Client) Under(placeholder string, value any) *Client {
	bound := *c
	bound.replacements = c.replacements.With(uri.Replace(placeholder, value))
	return &bound
}

// CollectionURI returns the collection path with the bound placeholders
// resolved.
func (c *Client) CollectionURI() string {
	return c.resolver.CollectionURI(c.replacements)
}

// InstanceURI returns the path of id with the bound placeholders resolved.
func (c *Client) InstanceURI(id any) string {
	return c.resolver.InstanceURI(c.replacements.With(uri.Replace(uri.IDPlaceholder, id)))
}

// New builds a local entity. attrs go through guarded assignment, so the
// identity and guarded names are dropped.
func (c *Client) New(attrs map[string]any) (*Entity, error) {
	entity := c.newEntity()
	if err := entity.store.Inflate(attrs); err != nil {
		_ = entity.store.Cleanup()
		return nil, err
	}
	return entity, nil
}

// Find fetches one entity. A 404 yields nil without an error.
func (c *Client) Find(ctx context.Context, id any, params map[string]string) (*Entity, error) {
	ctx = debugctx.Ensure(ctx, c.logger)

	req, err := c.builder.Build(c.InstanceURI(id), "GET", nil)
	if err != nil {
		return nil, err
	}
	request.ApplyParams(req, query.FromMap(params))

	outcome, err := c.roundTrip(ctx, response.OperationFind, req)
	if err != nil {
		return nil, err
	}
	switch outcome.Kind {
	case response.KindSuccess:
	case response.KindNotFound:
		return nil, nil
	default:
		return nil, outcome.Err()
	}
	if outcome.Data == nil {
		return nil, validationError("find response for "+c.ResourceName()+" is not an object", nil)
	}

	entity := c.newEntity()
	if err := entity.store.Load(outcome.Data); err != nil {
		_ = entity.store.Cleanup()
		return nil, err
	}
	return entity, nil
}

// FindAll fetches a collection. The response is either a list of objects or
// an object holding the list under the collection key; the other keys become
// the collection meta.
func (c *Client) FindAll(ctx context.Context, find query.Find) (*collection.Collection[*Entity], error) {
	ctx = debugctx.Ensure(ctx, c.logger)
	if err := find.Validate(); err != nil {
		return nil, validationError("invalid find", err)
	}

	req, err := c.builder.Build(c.CollectionURI(), "GET", nil)
	if err != nil {
		return nil, err
	}
	request.ApplyParams(req, find.Params(c.names))

	outcome, err := c.roundTrip(ctx, response.OperationFindAll, req)
	if err != nil {
		return nil, err
	}
	if !outcome.IsSuccess() {
		return nil, outcome.Err()
	}

	rows, meta, err := splitCollection(outcome.Body, c.cfg.CollectionKey)
	if err != nil {
		return nil, err
	}
	entities := make([]*Entity, 0, len(rows))
	for _, row := range rows {
		entity := c.newEntity()
		if err := entity.store.Load(row); err != nil {
			_ = entity.store.Cleanup()
			for _, loaded := range entities {
				_ = loaded.Close()
			}
			return nil, err
		}
		entities = append(entities, entity)
	}
	return collection.New(entities, meta), nil
}

func (c *Client) newEntity() *Entity {
	return &Entity{
		client: c,
		store: attribute.NewStore(
			attribute.WithIdentity(c.cfg.IdentityProperty),
			attribute.WithGuarded(c.cfg.Guarded...),
			attribute.WithFileFields(c.cfg.FileFields...),
			attribute.WithScratchDisk(c.fs, c.cfg.ScratchDiskLocation),
		),
		replacements: c.replacements,
	}
}

func (c *Client) roundTrip(ctx context.Context, op response.Operation, req *transport.Request) (response.Outcome, error) {
	debugctx.Debug(ctx, "resource request", "resource", c.ResourceName(), "operation", string(op), "method", req.Method, "path", req.Path)

	resp, err := c.transport.Execute(ctx, req)
	if err != nil {
		return response.Outcome{}, wrapTransportError(err)
	}
	outcome, err := c.interpreter.Interpret(op, resp)
	if err != nil {
		return response.Outcome{}, err
	}

	debugctx.Debug(ctx, "resource response", "resource", c.ResourceName(), "operation", string(op), "status", outcome.StatusCode, "outcome", string(outcome.Kind))
	if outcome.Kind == response.KindServerError {
		c.logger.Error(outcome.Err(), "remote server error", "resource", c.ResourceName(), "path", req.Path)
	}
	return outcome, nil
}

func searchNames(search *config.Search) query.Names {
	if search == nil {
		return query.DefaultNames()
	}
	return query.Names{
		Search:          search.Parameter,
		Property:        search.Property,
		Operator:        search.Operator,
		Value:           search.Value,
		LogicalOperator: search.LogicalOperator,
		OrderBy:         search.OrderBy,
		OrderDir:        search.OrderDir,
	}
}

func splitCollection(body any, collectionKey string) ([]map[string]any, map[string]any, error) {
	meta := map[string]any{}
	var rows any
	switch typed := body.(type) {
	case nil:
		return nil, meta, nil
	case []any:
		rows = typed
	case map[string]any:
		if _, ok := typed[collectionKey]; !ok && len(typed) == 1 {
			if items, err := collectionRows(typed); err == nil {
				return items, meta, nil
			}
		}
		for key, value := range typed {
			if key == collectionKey {
				rows = value
				continue
			}
			meta[key] = value
		}
	default:
		return nil, nil, validationError("collection response has an unexpected shape", nil)
	}

	items, err := collectionRows(rows)
	if err != nil {
		return nil, nil, err
	}
	return items, meta, nil
}

// collectionRows accepts a list of objects. A single-key object wrapping a
// list or one object is unwrapped, which is how XML collections decode.
func collectionRows(value any) ([]map[string]any, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case string:
		if typed == "" {
			return nil, nil
		}
	case []any:
		rows := make([]map[string]any, 0, len(typed))
		for idx, item := range typed {
			row, ok := item.(map[string]any)
			if !ok {
				return nil, validationError("collection item "+strconv.Itoa(idx)+" is not an object", nil)
			}
			rows = append(rows, row)
		}
		return rows, nil
	case map[string]any:
		if len(typed) != 1 {
			break
		}
		for _, wrapped := range typed {
			switch inner := wrapped.(type) {
			case []any:
				return collectionRows(inner)
			case map[string]any:
				return []map[string]any{inner}, nil
			}
		}
	}
	return nil, validationError("collection response has an unexpected shape", nil)
}
