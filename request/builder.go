// Package request turns resource configuration, a path and a verb into a
// transport request.
package request

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/crmarques/restrecord/attribute"
	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/query"
	"github.com/crmarques/restrecord/transport"
)

var supportedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPut:    {},
	http.MethodPost:   {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
	http.MethodHead:   {},
}

var overridableMethods = map[string]struct{}{
	http.MethodPut:    {},
	http.MethodPost:   {},
	http.MethodDelete: {},
}

// Builder is immutable and safe for concurrent use.
type Builder struct {
	baseURI        string
	accept         string
	methodParam    string
	credentials    *transport.Credentials
	defaultHeaders map[string]string
	readOnly       config.StringList
}

// NewBuilder binds a resource configuration. cfg is normalized with
// WithDefaults first.
func NewBuilder(cfg config.Resource) *Builder {
	normalized := cfg.WithDefaults()

	builder := &Builder{
		baseURI:        normalized.BaseURI,
		accept:         AcceptFor(normalized.Format),
		methodParam:    normalized.HTTPMethodParam,
		defaultHeaders: normalized.DefaultHeaders,
		readOnly:       normalized.ReadOnlyFields,
	}
	if basic, ok := normalized.Credentials(); ok {
		builder.credentials = &transport.Credentials{Username: basic.Username, Password: basic.Password}
	}
	return builder
}

// AcceptFor maps a transport format to its media type.
func AcceptFor(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), config.FormatXML) {
		return "application/xml"
	}
	return "application/json"
}

// NormalizeMethod validates method and returns the verb sent on the wire.
// PATCH travels as PUT.
func NormalizeMethod(method string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(method))
	if _, ok := supportedMethods[normalized]; !ok {
		return "", faults.NewTypedError(
			faults.InvalidMethodError,
			fmt.Sprintf("invalid HTTP method %q", method),
			nil,
		)
	}
	if normalized == http.MethodPatch {
		return http.MethodPut, nil
	}
	return normalized, nil
}

// Build validates method and prepares a request for path. When a method
// override parameter is configured, mutating verbs are sent as POST with the
// verb carried in that body field.
func (b *Builder) Build(path string, method string, headers map[string]string) (*transport.Request, error) {
	wireMethod, err := NormalizeMethod(method)
	if err != nil {
		return nil, err
	}

	request := &transport.Request{
		BaseURI: b.baseURI,
		Method:  wireMethod,
		Path:    path,
		Header:  http.Header{},
	}

	if b.methodParam != "" {
		if _, ok := overridableMethods[wireMethod]; ok {
			request.Method = http.MethodPost
			request.Fields = append(request.Fields, query.Param{Key: b.methodParam, Value: wireMethod})
		}
	}

	if b.credentials != nil {
		credentials := *b.credentials
		request.BasicAuth = &credentials
	}

	request.Header.Set("Accept", b.accept)
	for _, key := range sortedKeys(b.defaultHeaders) {
		request.Header.Set(key, b.defaultHeaders[key])
	}
	for _, key := range sortedKeys(headers) {
		request.Header.Set(key, headers[key])
	}

	return request, nil
}

// ApplyEntityFields copies the store into the request body. File fields
// become file parts, read-only fields are skipped and nested values are
// flattened into bracketed keys.
func (b *Builder) ApplyEntityFields(request *transport.Request, store *attribute.Store) {
	for _, key := range store.Keys() {
		if b.readOnly.Contains(key) {
			continue
		}
		value := store.Value(key)
		if store.IsFileField(key) {
			path, ok := value.(string)
			if !ok || strings.TrimSpace(path) == "" {
				continue
			}
			fs := store.Fs()
			request.Files = append(request.Files, transport.File{
				Field: key,
				Path:  path,
				Open: func() (io.ReadCloser, error) {
					return fs.Open(path)
				},
			})
			continue
		}
		request.Fields = append(request.Fields, Flatten(key, value)...)
	}
}

// ApplyParams appends query-string parameters.
func ApplyParams(request *transport.Request, params []query.Param) {
	request.Query = append(request.Query, params...)
}

// ApplyFields appends body fields, flattening nested values.
func ApplyFields(request *transport.Request, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		request.Fields = append(request.Fields, Flatten(key, fields[key])...)
	}
}

// ApplyFiles appends file parts read from local paths, keyed by field.
func ApplyFiles(request *transport.Request, files map[string]string) {
	for _, field := range sortedKeys(files) {
		request.Files = append(request.Files, transport.File{Field: field, Path: files[field]})
	}
}

// Flatten expands maps and slices into bracketed form fields:
// {"a": {"b": 1}} becomes a[b]=1 and {"a": [1, 2]} becomes a[0]=1, a[1]=2.
func Flatten(key string, value any) []query.Param {
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for nested := range typed {
			keys = append(keys, nested)
		}
		sort.Strings(keys)
		var params []query.Param
		for _, nested := range keys {
			params = append(params, Flatten(key+"["+nested+"]", typed[nested])...)
		}
		return params
	case []any:
		var params []query.Param
		for idx, item := range typed {
			params = append(params, Flatten(key+"["+strconv.Itoa(idx)+"]", item)...)
		}
		return params
	case []string:
		params := make([]query.Param, 0, len(typed))
		for idx, item := range typed {
			params = append(params, query.Param{Key: key + "[" + strconv.Itoa(idx) + "]", Value: item})
		}
		return params
	case map[string]string:
		params := make([]query.Param, 0, len(typed))
		for _, nested := range sortedKeys(typed) {
			params = append(params, query.Param{Key: key + "[" + nested + "]", Value: typed[nested]})
		}
		return params
	default:
		return []query.Param{{Key: key, Value: query.FormatValue(value)}}
	}
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
