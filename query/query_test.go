package query

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindParams(t *testing.T) {
	t.Parallel()

	t.Run("single_condition_without_logical_operator", func(t *testing.T) {
		t.Parallel()

		find := Find{Conditions: []Condition{Where("name", "LIKE", "A%")}}
		got := find.Params(DefaultNames())
		want := []Param{
			{Key: "search[0][property]", Value: "name"},
			{Key: "search[0][operator]", Value: "LIKE"},
			{Key: "search[0][value]", Value: "A%"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Params() mismatch (-want +got):\n%s", diff)
		}
		if encoded := Encode(got); encoded != "search[0][property]=name&search[0][operator]=LIKE&search[0][value]=A%25" {
			t.Fatalf("unexpected encoding %q", encoded)
		}
	})

	t.Run("extra_params_first_then_ordering", func(t *testing.T) {
		t.Parallel()

		find := Find{
			Conditions: []Condition{
				Where("age", ">", 30),
				Where("active", "=", true),
			},
			LogicalOperator: Or,
			OrderBy:         "name",
			OrderDir:        Desc,
			Params:          map[string]string{"page": "2", "include": "company"},
		}
		got := find.Params(Names{})
		want := []Param{
			{Key: "include", Value: "company"},
			{Key: "page", Value: "2"},
			{Key: "search[0][property]", Value: "age"},
			{Key: "search[0][operator]", Value: ">"},
			{Key: "search[0][value]", Value: "30"},
			{Key: "search[1][property]", Value: "active"},
			{Key: "search[1][operator]", Value: "="},
			{Key: "search[1][value]", Value: "true"},
			{Key: "logical_operator", Value: "OR"},
			{Key: "order_by", Value: "name"},
			{Key: "order_dir", Value: "DESC"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Params() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("order_by_uses_its_own_key", func(t *testing.T) {
		t.Parallel()

		got := Find{OrderBy: "created_at"}.Params(DefaultNames())
		want := []Param{{Key: "order_by", Value: "created_at"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Params() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("custom_names", func(t *testing.T) {
		t.Parallel()

		names := Names{Search: "q", Property: "p", Operator: "o", Value: "v", LogicalOperator: "op"}
		got := Find{Conditions: []Condition{Where("id", "IN", "1,2")}, LogicalOperator: And}.Params(names)
		want := []Param{
			{Key: "q[0][p]", Value: "id"},
			{Key: "q[0][o]", Value: "IN"},
			{Key: "q[0][v]", Value: "1,2"},
			{Key: "op", Value: "AND"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Params() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty_find", func(t *testing.T) {
		t.Parallel()

		if got := (Find{}).Params(DefaultNames()); len(got) != 0 {
			t.Fatalf("expected no params, got %#v", got)
		}
	})
}

func TestFindValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		find    Find
		wantErr bool
	}{
		{name: "valid", find: Find{Conditions: []Condition{Where("a", "=", 1)}, LogicalOperator: "and", OrderDir: "asc"}},
		{name: "bad_logical_operator", find: Find{LogicalOperator: "XOR"}, wantErr: true},
		{name: "bad_direction", find: Find{OrderDir: "UP"}, wantErr: true},
		{name: "missing_property", find: Find{Conditions: []Condition{{Operator: "="}}}, wantErr: true},
		{name: "missing_operator", find: Find{Conditions: []Condition{{Property: "a"}}}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.find.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   any
		want string
	}{
		"nil":         {in: nil, want: ""},
		"string":      {in: "x", want: "x"},
		"bool":        {in: false, want: "false"},
		"int":         {in: 42, want: "42"},
		"float":       {in: 1.5, want: "1.5"},
		"json_number": {in: json.Number("12.50"), want: "12.50"},
	}
	for name, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Fatalf("%s: FormatValue() = %q, want %q", name, got, tt.want)
		}
	}
}

func TestEncodeEscapesValuesAndKeys(t *testing.T) {
	t.Parallel()

	got := Encode([]Param{{Key: "name with space", Value: "a&b"}, {Key: "tags[]", Value: "x y"}})
	if got != "name+with+space=a%26b&tags[]=x+y" {
		t.Fatalf("Encode() = %q", got)
	}
}
