package common

import (
	"testing"

	"github.com/crmarques/restrecord/faults"
)

func TestEnumValue(t *testing.T) {
	t.Parallel()

	var direction string
	value := NewEnumValue(&direction, "ASC", "DESC")

	if err := value.Set(" desc "); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if direction != "DESC" || value.String() != "DESC" {
		t.Fatalf("expected canonical DESC, got %q", direction)
	}
	if err := value.Set("sideways"); !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if direction != "DESC" {
		t.Fatalf("rejected value must not overwrite, got %q", direction)
	}
	if value.Type() != "string" {
		t.Fatalf("unexpected type %q", value.Type())
	}
}
