package record

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-multierror"

	"github.com/crmarques/restrecord/attribute"
	"github.com/crmarques/restrecord/debugctx"
	"github.com/crmarques/restrecord/response"
	"github.com/crmarques/restrecord/uri"
)

// Entity is one remote record held locally. It is not safe for concurrent
// use. Scratch files created from base64 attributes are removed after the
// next Save or Destroy, or by Close.
type Entity struct {
	client       *Client
	store        *attribute.Store
	errors       any
	replacements uri.Replacements
}

// ID returns the identity value when present.
func (e *Entity) ID() (any, bool) {
	return e.store.Get(e.store.Identity())
}

func (e *Entity) Get(name string) (any, bool) {
	return e.store.Get(name)
}

// Value returns the attribute or nil.
func (e *Entity) Value(name string) any {
	return e.store.Value(name)
}

// Set assigns one attribute. Guarded names are accepted here; only bulk
// assignment drops them.
func (e *Entity) Set(name string, value any) error {
	return e.store.Set(name, value)
}

func (e *Entity) Unset(name string) {
	e.store.Unset(name)
}

func (e *Entity) Has(name string) bool {
	return e.store.Has(name)
}

// Attributes returns a snapshot of the attribute mapping.
func (e *Entity) Attributes() map[string]any {
	return e.store.Attributes()
}

// Keys returns attribute names in insertion order.
func (e *Entity) Keys() []string {
	return e.store.Keys()
}

// UpdateAttributes bulk-assigns attrs with the guard list applied.
func (e *Entity) UpdateAttributes(attrs map[string]any) error {
	return e.store.Inflate(attrs)
}

// Purge removes name and returns its previous value.
func (e *Entity) Purge(name string) any {
	return e.store.Purge(name)
}

// Decode copies the attributes into a struct or map pointer.
func (e *Entity) Decode(out any) error {
	return e.store.Decode(out)
}

// Errors returns the validation payload of the last failed Save, or nil.
func (e *Entity) Errors() any {
	return e.errors
}

// PendingFiles lists scratch files that will be removed after the next call.
func (e *Entity) PendingFiles() []string {
	return e.store.PendingFiles()
}

// Nest binds an ancestor placeholder for this entity's own paths.
func (e *Entity) Nest(placeholder string, value any) *Entity {
	e.replacements = e.replacements.With(uri.Replace(placeholder, value))
	return e
}

// Close removes pending scratch files.
func (e *Entity) Close() error {
	return e.store.Cleanup()
}

// Save creates the entity when it has no identity and updates it otherwise.
// A 422 reports false with Errors populated; server and transport failures
// are returned as errors. Scratch files are removed on every path.
func (e *Entity) Save(ctx context.Context) (ok bool, err error) {
	defer e.release(&err)

	e.errors = nil
	ctx = debugctx.Ensure(ctx, e.client.logger)

	op := response.OperationCreate
	method := http.MethodPost
	path := e.client.resolver.CreateURI(e.replacements)
	if id, exists := e.ID(); exists {
		op = response.OperationUpdate
		method = http.MethodPatch
		path = e.client.resolver.UpdateURI(e.replacements.With(uri.Replace(uri.IDPlaceholder, id)))
	}

	req, err := e.client.builder.Build(path, method, nil)
	if err != nil {
		return false, err
	}
	e.client.builder.ApplyEntityFields(req, e.store)

	outcome, err := e.client.roundTrip(ctx, op, req)
	if err != nil {
		return false, err
	}

	switch outcome.Kind {
	case response.KindSuccess:
		if outcome.Data != nil {
			if err := e.store.Load(outcome.Data); err != nil {
				return false, err
			}
		}
		return true, nil
	case response.KindValidationFailure:
		e.errors = outcome.Errors
		return false, nil
	default:
		return false, outcome.Err()
	}
}

// Destroy deletes the entity. Only a 200 counts as success; other statuses
// report false, and server or transport failures are returned as errors.
func (e *Entity) Destroy(ctx context.Context) (ok bool, err error) {
	defer e.release(&err)

	id, exists := e.ID()
	if !exists {
		return false, validationError("cannot destroy "+e.client.ResourceName()+" without "+e.store.Identity(), nil)
	}
	ctx = debugctx.Ensure(ctx, e.client.logger)

	req, err := e.client.builder.Build(
		e.client.resolver.DeleteURI(e.replacements.With(uri.Replace(uri.IDPlaceholder, id))),
		http.MethodDelete,
		nil,
	)
	if err != nil {
		return false, err
	}

	outcome, err := e.client.roundTrip(ctx, response.OperationDestroy, req)
	if err != nil {
		return false, err
	}
	switch outcome.Kind {
	case response.KindSuccess:
		return true, nil
	case response.KindServerError:
		return false, outcome.Err()
	default:
		return false, nil
	}
}

// release runs scratch cleanup and merges its failure into err.
func (e *Entity) release(err *error) {
	cleanupErr := e.store.Cleanup()
	if cleanupErr == nil {
		return
	}
	if *err == nil {
		*err = cleanupErr
		return
	}
	*err = multierror.Append(*err, cleanupErr)
}
