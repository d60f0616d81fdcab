package config

import "testing"

func TestApplyEnvLookup(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvBaseURI:  " https://env.example.com ",
		EnvUsername: "env-user",
		EnvPassword: "env-pass",
		EnvFormat:   "",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	input := Resource{BaseURI: "https://file.example.com", Format: FormatXML}
	got := ApplyEnvLookup(input, lookup)

	if got.BaseURI != "https://env.example.com" {
		t.Fatalf("expected env base-uri, got %q", got.BaseURI)
	}
	if got.Format != FormatXML {
		t.Fatalf("expected empty env value to be ignored, got %q", got.Format)
	}
	credentials, ok := got.Credentials()
	if !ok || credentials.Username != "env-user" || credentials.Password != "env-pass" {
		t.Fatalf("unexpected credentials %#v", credentials)
	}
	if input.Auth != nil {
		t.Fatalf("ApplyEnvLookup mutated the input")
	}
}
