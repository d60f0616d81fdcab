package config

import (
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/crmarques/restrecord/faults"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Resource {
		return Resource{Name: "Employee", BaseURI: "https://api.example.com"}
	}

	tests := []struct {
		name    string
		mutate  func(*Resource)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Resource) {}},
		{name: "missing_base_uri", mutate: func(r *Resource) { r.BaseURI = "" }, wantErr: true},
		{name: "ftp_base_uri", mutate: func(r *Resource) { r.BaseURI = "ftp://example.com" }, wantErr: true},
		{name: "base_uri_without_host", mutate: func(r *Resource) { r.BaseURI = "https://" }, wantErr: true},
		{name: "unknown_format", mutate: func(r *Resource) { r.Format = "yaml" }, wantErr: true},
		{name: "half_basic_auth", mutate: func(r *Resource) { r.Auth = &Auth{BasicAuth: &BasicAuth{Username: "user"}} }, wantErr: true},
		{name: "negative_retries", mutate: func(r *Resource) { r.Transport = &Transport{MaxRetries: -1} }, wantErr: false},
		{name: "negative_rate", mutate: func(r *Resource) { r.Transport = &Transport{RequestsPerSecond: -1} }, wantErr: true},
		{name: "tls_half_client_pair", mutate: func(r *Resource) { r.Transport = &Transport{TLS: &TLS{ClientCertFile: "/c.pem"}} }, wantErr: true},
		{name: "tls_ca_only", mutate: func(r *Resource) { r.Transport = &Transport{TLS: &TLS{CACertFile: "/ca.pem"}} }},
		{name: "identity_as_file_field", mutate: func(r *Resource) { r.FileFields = StringList{"id"} }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resource := valid()
			tt.mutate(&resource)
			err := resource.WithDefaults().Validate()
			if tt.wantErr {
				if !faults.IsCategory(err, faults.ValidationError) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected valid resource, got %v", err)
			}
		})
	}
}

func TestStringListYAML(t *testing.T) {
	t.Parallel()

	var decoded struct {
		Scalar   StringList `yaml:"scalar"`
		Sequence StringList `yaml:"sequence"`
		Empty    StringList `yaml:"empty"`
	}
	input := "scalar: \" salary, role ,,\"\nsequence: [avatar, ' resume ']\nempty: null\n"
	if err := yaml.Unmarshal([]byte(input), &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if decoded.Scalar.String() != "salary,role" {
		t.Fatalf("unexpected scalar list %v", decoded.Scalar)
	}
	if decoded.Sequence.String() != "avatar,resume" {
		t.Fatalf("unexpected sequence list %v", decoded.Sequence)
	}
	if decoded.Empty != nil {
		t.Fatalf("expected nil list, got %v", decoded.Empty)
	}
	if !decoded.Scalar.Contains("role") || decoded.Scalar.Contains("Role") {
		t.Fatalf("Contains must match exact names")
	}
}
