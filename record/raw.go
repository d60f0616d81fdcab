package record

import (
	"context"
	"net/http"

	"github.com/crmarques/restrecord/debugctx"
	"github.com/crmarques/restrecord/query"
	"github.com/crmarques/restrecord/request"
	"github.com/crmarques/restrecord/response"
)

// RawResponse is the result of a call not mapped onto an entity.
type RawResponse struct {
	Success    bool `json:"success"`
	Body       any  `json:"body,omitempty"`
	Errors     any  `json:"errors,omitempty"`
	StatusCode int  `json:"status-code"`
}

// RawInput carries the optional parts of a raw call. Files map a field name
// to a local path.
type RawInput struct {
	Fields  map[string]any
	Params  map[string]string
	Files   map[string]string
	Headers map[string]string
}

func (c *Client) RawGet(ctx context.Context, path string, params map[string]string) (*RawResponse, error) {
	return c.Raw(ctx, http.MethodGet, path, RawInput{Params: params})
}

func (c *Client) RawPost(ctx context.Context, path string, fields map[string]any, params map[string]string, files map[string]string) (*RawResponse, error) {
	return c.Raw(ctx, http.MethodPost, path, RawInput{Fields: fields, Params: params, Files: files})
}

func (c *Client) RawPut(ctx context.Context, path string, fields map[string]any, params map[string]string, files map[string]string) (*RawResponse, error) {
	return c.Raw(ctx, http.MethodPut, path, RawInput{Fields: fields, Params: params, Files: files})
}

func (c *Client) RawPatch(ctx context.Context, path string, fields map[string]any, params map[string]string, files map[string]string) (*RawResponse, error) {
	return c.Raw(ctx, http.MethodPatch, path, RawInput{Fields: fields, Params: params, Files: files})
}

func (c *Client) RawDelete(ctx context.Context, path string, params map[string]string) (*RawResponse, error) {
	return c.Raw(ctx, http.MethodDelete, path, RawInput{Params: params})
}

// Raw sends method to path on the resource base URI. Bound placeholders are
// resolved in path. Server and transport failures are errors; every other
// status is reported through RawResponse.
func (c *Client) Raw(ctx context.Context, method string, path string, input RawInput) (*RawResponse, error) {
	ctx = debugctx.Ensure(ctx, c.logger)

	req, err := c.builder.Build(c.replacements.Apply(path), method, input.Headers)
	if err != nil {
		return nil, err
	}
	request.ApplyParams(req, query.FromMap(input.Params))
	request.ApplyFields(req, input.Fields)
	request.ApplyFiles(req, input.Files)

	outcome, err := c.roundTrip(ctx, response.OperationRaw, req)
	if err != nil {
		return nil, err
	}
	if outcome.Kind == response.KindServerError {
		return nil, outcome.Err()
	}

	raw := &RawResponse{
		Success:    outcome.IsSuccess(),
		Body:       outcome.Body,
		Errors:     outcome.Errors,
		StatusCode: outcome.StatusCode,
	}
	return raw, nil
}
