package http

import (
	"net/url"
	"path"
	"strings"

	"github.com/crmarques/restrecord/query"
)

func resolveRequestURL(baseURI string, requestPath string, params []query.Param) (*url.URL, error) {
	if strings.TrimSpace(baseURI) == "" {
		return nil, validationError("base-uri is required", nil)
	}
	baseURL, err := url.Parse(strings.TrimSpace(baseURI))
	if err != nil {
		return nil, validationError("invalid base-uri", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, validationError("base-uri must be an absolute URL", nil)
	}
	if parsed, err := url.Parse(requestPath); err == nil && parsed.Scheme != "" {
		return nil, validationError("request path must be relative to base-uri", nil)
	}

	target := *baseURL
	target.Path = joinBaseAndRequestPath(baseURL.Path, requestPath)
	target.RawPath = ""

	encoded := query.Encode(params)
	switch {
	case encoded == "":
	case target.RawQuery == "":
		target.RawQuery = encoded
	default:
		target.RawQuery += "&" + encoded
	}
	return &target, nil
}

func normalizeRequestPath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if trimmed != "/" {
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	return trimmed
}

func joinBaseAndRequestPath(basePath string, requestPath string) string {
	normalizedBase := normalizeRequestPath(basePath)
	if normalizedBase == "" {
		normalizedBase = "/"
	}

	normalizedRequest := normalizeRequestPath(requestPath)
	if normalizedRequest == "" || normalizedRequest == "/" {
		return normalizedBase
	}

	joined := path.Join(normalizedBase, strings.TrimPrefix(normalizedRequest, "/"))
	if !strings.HasPrefix(joined, "/") {
		return "/" + joined
	}
	return joined
}

// redactURL hides query values and user info in debug output.
func redactURL(value *url.URL) string {
	if value == nil {
		return ""
	}

	cloned := *value
	cloned.User = nil

	values := cloned.Query()
	if len(values) > 0 {
		for key, items := range values {
			redacted := make([]string, len(items))
			for idx := range items {
				redacted[idx] = "<redacted>"
			}
			values[key] = redacted
		}
		cloned.RawQuery = values.Encode()
	}
	return cloned.String()
}
