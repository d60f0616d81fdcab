package uri

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type Employee struct{}

func TestResourceNameFromType(t *testing.T) {
	t.Parallel()

	if got := NameOf(Employee{}); got != "Employee" {
		t.Fatalf("NameOf(Employee{}) = %q", got)
	}
	if got := NameOf(&Employee{}); got != "Employee" {
		t.Fatalf("NameOf(&Employee{}) = %q", got)
	}
	if got := NameOf(nil); got != "" {
		t.Fatalf("NameOf(nil) = %q", got)
	}
}

func TestCollectionURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		nesting []string
		opts    []Option
		want    string
	}{
		{name: "plain", want: "/employees"},
		{name: "single_nesting", nesting: []string{"Company:company_id"}, want: "/companies/:company_id/employees"},
		{
			name:    "multi_level_nesting_is_ancestor_first",
			nesting: []string{"Company:company_id", "Department:department_id"},
			want:    "/companies/:company_id/departments/:department_id/employees",
		},
		{name: "numeric_segment_is_literal", nesting: []string{"Company:7"}, want: "/companies/7/employees"},
		{name: "explicit_uri_wins", opts: []Option{WithURI("staff/members/")}, want: "/staff/members"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nesting, err := ParseNesting(tt.nesting)
			if err != nil {
				t.Fatalf("ParseNesting returned error: %v", err)
			}
			resolver, err := NewResolver("Employee", append([]Option{WithNesting(nesting)}, tt.opts...)...)
			if err != nil {
				t.Fatalf("NewResolver returned error: %v", err)
			}
			if got := resolver.CollectionURI(nil); got != tt.want {
				t.Fatalf("CollectionURI() = %q, want %q", got, tt.want)
			}
			if got := resolver.CreateURI(nil); got != tt.want {
				t.Fatalf("CreateURI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstanceURIResolvesOnlySuppliedPlaceholders(t *testing.T) {
	t.Parallel()

	nesting, err := ParseNesting([]string{"Company:company_id"})
	if err != nil {
		t.Fatalf("ParseNesting returned error: %v", err)
	}
	resolver, err := NewResolver("Employee", WithNesting(nesting))
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	if got := resolver.InstanceURI(Replacements{Replace(IDPlaceholder, 42)}); got != "/companies/:company_id/employees/42" {
		t.Fatalf("InstanceURI() = %q", got)
	}

	full := Replacements{Replace("company_id", 7)}.With(Replace(":id", "42"))
	if got := resolver.UpdateURI(full); got != "/companies/7/employees/42" {
		t.Fatalf("UpdateURI() = %q", got)
	}
	if got := resolver.DeleteURI(nil); got != "/companies/:company_id/employees/:id" {
		t.Fatalf("DeleteURI() = %q", got)
	}
}

func TestParseNesting(t *testing.T) {
	t.Parallel()

	got, err := ParseNesting([]string{" Company : company_id ", "", "Department::department_id"})
	if err != nil {
		t.Fatalf("ParseNesting returned error: %v", err)
	}
	want := Nesting{
		{Resource: "Company", ID: ":company_id"},
		{Resource: "Department", ID: ":department_id"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseNesting mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{":company_id", ":department_id"}, got.Placeholders()); diff != "" {
		t.Fatalf("Placeholders mismatch (-want +got):\n%s", diff)
	}

	for _, invalid := range []string{"Company", ":company_id", "Company:"} {
		if _, err := ParseNesting([]string{invalid}); err == nil {
			t.Fatalf("expected error for %q", invalid)
		}
	}
}

func TestCollectionName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Employee":   "employees",
		"Company":    "companies",
		"JobPosting": "job_postings",
		"Person":     "people",
	}
	for in, want := range tests {
		if got := CollectionName(in); got != want {
			t.Fatalf("CollectionName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewResolverRequiresName(t *testing.T) {
	t.Parallel()

	if _, err := NewResolver("  "); err == nil {
		t.Fatalf("expected error for empty resource name")
	}
}
