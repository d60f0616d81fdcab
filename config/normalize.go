package config

import (
	"strings"
)

// WithDefaults returns a copy of r with every unset field filled in.
func (r Resource) WithDefaults() Resource {
	normalized := r.Clone()
	normalized.Name = strings.TrimSpace(normalized.Name)
	normalized.BaseURI = strings.TrimSpace(normalized.BaseURI)
	normalized.HTTPMethodParam = strings.TrimSpace(normalized.HTTPMethodParam)

	normalized.Format = strings.ToLower(strings.TrimSpace(normalized.Format))
	if normalized.Format == "" {
		normalized.Format = FormatJSON
	}
	if strings.TrimSpace(normalized.IdentityProperty) == "" {
		normalized.IdentityProperty = DefaultIdentityProperty
	}
	if strings.TrimSpace(normalized.CollectionKey) == "" {
		normalized.CollectionKey = DefaultCollectionKey
	}
	if strings.TrimSpace(normalized.ScratchDiskLocation) == "" {
		normalized.ScratchDiskLocation = DefaultScratchDisk
	}

	search := Search{}
	if normalized.Search != nil {
		search = *normalized.Search
	}
	search.Parameter = defaultString(search.Parameter, DefaultSearchParameter)
	search.Property = defaultString(search.Property, DefaultSearchProperty)
	search.Operator = defaultString(search.Operator, DefaultSearchOperator)
	search.Value = defaultString(search.Value, DefaultSearchValue)
	search.LogicalOperator = defaultString(search.LogicalOperator, DefaultLogicalOperatorKey)
	search.OrderBy = defaultString(search.OrderBy, DefaultOrderByKey)
	search.OrderDir = defaultString(search.OrderDir, DefaultOrderDirKey)
	normalized.Search = &search

	transport := Transport{}
	if normalized.Transport != nil {
		transport = *cloneTransport(normalized.Transport)
	}
	if transport.Timeout <= 0 {
		transport.Timeout = DefaultTransportTimeout
	}
	if transport.MaxRetries < 0 {
		transport.MaxRetries = 0
	}
	normalized.Transport = &transport

	return normalized
}

// Merge fills every empty field of r from base. Lists and maps are taken from
// base only when r leaves them unset; header maps are merged key by key with
// r winning.
func (r Resource) Merge(base Resource) Resource {
	merged := r.Clone()
	merged.URI = defaultString(merged.URI, base.URI)
	merged.BaseURI = defaultString(merged.BaseURI, base.BaseURI)
	merged.Format = defaultString(merged.Format, base.Format)
	merged.HTTPMethodParam = defaultString(merged.HTTPMethodParam, base.HTTPMethodParam)
	merged.ScratchDiskLocation = defaultString(merged.ScratchDiskLocation, base.ScratchDiskLocation)
	merged.IdentityProperty = defaultString(merged.IdentityProperty, base.IdentityProperty)
	merged.CollectionKey = defaultString(merged.CollectionKey, base.CollectionKey)
	if merged.NestedUnder == nil {
		merged.NestedUnder = cloneStringList(base.NestedUnder)
	}
	if merged.Guarded == nil {
		merged.Guarded = cloneStringList(base.Guarded)
	}
	if merged.FileFields == nil {
		merged.FileFields = cloneStringList(base.FileFields)
	}
	if merged.ReadOnlyFields == nil {
		merged.ReadOnlyFields = cloneStringList(base.ReadOnlyFields)
	}
	if merged.Search == nil && base.Search != nil {
		search := *base.Search
		merged.Search = &search
	}
	if merged.Auth == nil && base.Auth != nil {
		merged.Auth = cloneAuth(base.Auth)
	}
	if merged.Transport == nil {
		merged.Transport = cloneTransport(base.Transport)
	}
	if len(base.DefaultHeaders) > 0 {
		headers := cloneStringMap(base.DefaultHeaders)
		for key, value := range merged.DefaultHeaders {
			headers[key] = value
		}
		merged.DefaultHeaders = headers
	}
	return merged
}

// Clone returns a deep copy of r.
func (r Resource) Clone() Resource {
	cloned := r
	cloned.NestedUnder = cloneStringList(r.NestedUnder)
	cloned.Guarded = cloneStringList(r.Guarded)
	cloned.FileFields = cloneStringList(r.FileFields)
	cloned.ReadOnlyFields = cloneStringList(r.ReadOnlyFields)
	cloned.DefaultHeaders = cloneStringMap(r.DefaultHeaders)
	cloned.Auth = cloneAuth(r.Auth)
	if r.Search != nil {
		search := *r.Search
		cloned.Search = &search
	}
	cloned.Transport = cloneTransport(r.Transport)
	return cloned
}

// Resolve returns the named resource merged over the catalog defaults.
func (c Catalog) Resolve(name string) (Resource, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		if len(c.Resources) != 1 {
			return Resource{}, validationError("resource name is required when the catalog defines more than one resource", nil)
		}
		return c.Resources[0].Merge(c.Defaults), nil
	}
	for _, item := range c.Resources {
		if strings.EqualFold(strings.TrimSpace(item.Name), trimmed) {
			return item.Merge(c.Defaults), nil
		}
	}
	return Resource{}, notFoundError("resource "+trimmed+" is not defined in the catalog", nil)
}

// Names lists the resource names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Resources))
	for _, item := range c.Resources {
		names = append(names, item.Name)
	}
	return names
}

func defaultString(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func cloneAuth(auth *Auth) *Auth {
	if auth == nil {
		return nil
	}
	cloned := &Auth{}
	if auth.BasicAuth != nil {
		basic := *auth.BasicAuth
		cloned.BasicAuth = &basic
	}
	return cloned
}

func cloneTransport(transport *Transport) *Transport {
	if transport == nil {
		return nil
	}
	cloned := *transport
	if transport.TLS != nil {
		tls := *transport.TLS
		cloned.TLS = &tls
	}
	return &cloned
}

func cloneStringMap(values map[string]string) map[string]string {
	if values == nil {
		return nil
	}
	cloned := make(map[string]string, len(values))
	for key, value := range values {
		cloned[key] = value
	}
	return cloned
}
