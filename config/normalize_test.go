package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/crmarques/restrecord/faults"
)

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	got := Resource{Name: " Employee ", Format: " XML "}.WithDefaults()
	if got.Name != "Employee" || got.Format != FormatXML {
		t.Fatalf("expected trimmed name and lowercase format, got %q %q", got.Name, got.Format)
	}
	if got.IdentityProperty != "id" || got.CollectionKey != "collection" || got.ScratchDiskLocation != "/tmp" {
		t.Fatalf("unexpected defaults %#v", got)
	}
	wantSearch := Search{
		Parameter:       "search",
		Property:        "property",
		Operator:        "operator",
		Value:           "value",
		LogicalOperator: "logical_operator",
		OrderBy:         "order_by",
		OrderDir:        "order_dir",
	}
	if diff := cmp.Diff(wantSearch, *got.Search); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
	if got.Transport == nil || got.Transport.Timeout != DefaultTransportTimeout {
		t.Fatalf("expected default transport timeout, got %#v", got.Transport)
	}

	if format := (Resource{}).WithDefaults().Format; format != FormatJSON {
		t.Fatalf("expected json default, got %q", format)
	}
}

func TestWithDefaultsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := Resource{Search: &Search{Parameter: "q"}, Guarded: StringList{"role"}}
	_ = input.WithDefaults()
	if input.Search.Property != "" {
		t.Fatalf("WithDefaults mutated the input search block")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := Resource{
		BaseURI:        "https://api.example.com",
		Format:         FormatXML,
		Guarded:        StringList{"role"},
		DefaultHeaders: map[string]string{"X-Client": "base", "X-Env": "prod"},
		Auth:           &Auth{BasicAuth: &BasicAuth{Username: "user", Password: "secret"}},
		Transport:      &Transport{Timeout: time.Second, TLS: &TLS{CACertFile: "/ca.pem"}},
	}
	resource := Resource{
		Name:           "Employee",
		Format:         FormatJSON,
		Guarded:        StringList{},
		DefaultHeaders: map[string]string{"X-Client": "resource"},
	}

	merged := resource.Merge(base)
	if merged.BaseURI != base.BaseURI || merged.Format != FormatJSON {
		t.Fatalf("unexpected scalar merge %#v", merged)
	}
	if len(merged.Guarded) != 0 {
		t.Fatalf("expected an explicit empty list to win, got %v", merged.Guarded)
	}
	if diff := cmp.Diff(map[string]string{"X-Client": "resource", "X-Env": "prod"}, merged.DefaultHeaders); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}

	merged.Auth.BasicAuth.Username = "changed"
	merged.Transport.Timeout = time.Minute
	merged.Transport.TLS.CACertFile = "/other.pem"
	if base.Auth.BasicAuth.Username != "user" || base.Transport.Timeout != time.Second || base.Transport.TLS.CACertFile != "/ca.pem" {
		t.Fatalf("Merge shared pointers with the base")
	}
}

func TestCatalogResolve(t *testing.T) {
	t.Parallel()

	catalog := Catalog{
		Defaults:  Resource{BaseURI: "https://api.example.com"},
		Resources: []Resource{{Name: "Employee"}, {Name: "Company", BaseURI: "https://other.example.com"}},
	}

	company, err := catalog.Resolve("company")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if company.BaseURI != "https://other.example.com" {
		t.Fatalf("expected resource base-uri, got %q", company.BaseURI)
	}

	if _, err := catalog.Resolve(""); !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected ambiguous empty name to fail, got %v", err)
	}
	if _, err := catalog.Resolve("Invoice"); !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not found, got %v", err)
	}

	single := Catalog{Resources: []Resource{{Name: "Employee"}}}
	if resolved, err := single.Resolve(""); err != nil || resolved.Name != "Employee" {
		t.Fatalf("expected the only resource, got %v %v", resolved.Name, err)
	}
}
