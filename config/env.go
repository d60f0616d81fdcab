package config

import (
	"os"
	"strings"
)

const (
	EnvBaseURI  = "RESTRECORD_BASE_URI"
	EnvUsername = "RESTRECORD_USERNAME"
	EnvPassword = "RESTRECORD_PASSWORD"
	EnvFormat   = "RESTRECORD_FORMAT"
)

var envSetters = map[string]func(*Resource, string){
	EnvBaseURI: func(r *Resource, value string) { r.BaseURI = value },
	EnvFormat:  func(r *Resource, value string) { r.Format = value },
	EnvUsername: func(r *Resource, value string) {
		ensureBasicAuth(r).Username = value
	},
	EnvPassword: func(r *Resource, value string) {
		ensureBasicAuth(r).Password = value
	},
}

// ApplyEnv overlays process environment values on r.
func ApplyEnv(r Resource) Resource {
	return ApplyEnvLookup(r, os.LookupEnv)
}

// ApplyEnvLookup overlays values returned by lookup on r. Empty values are
// ignored.
func ApplyEnvLookup(r Resource, lookup func(string) (string, bool)) Resource {
	if lookup == nil {
		return r
	}
	overridden := r.Clone()
	for _, key := range []string{EnvBaseURI, EnvFormat, EnvUsername, EnvPassword} {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		envSetters[key](&overridden, strings.TrimSpace(value))
	}
	return overridden
}

func ensureBasicAuth(r *Resource) *BasicAuth {
	if r.Auth == nil {
		r.Auth = &Auth{}
	}
	if r.Auth.BasicAuth == nil {
		r.Auth.BasicAuth = &BasicAuth{}
	}
	return r.Auth.BasicAuth
}
