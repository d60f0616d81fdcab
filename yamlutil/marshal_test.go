package yamlutil

import "testing"

func TestMarshalUsesTwoSpaceIndent(t *testing.T) {
	t.Parallel()

	got, err := Marshal(map[string]any{"employee": map[string]any{"name": "Ada"}})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if want := "employee:\n  name: Ada\n"; string(got) != want {
		t.Fatalf("Marshal() = %q, want %q", got, want)
	}
}

func TestMarshalWithIndent(t *testing.T) {
	t.Parallel()

	got, err := MarshalWithIndent(map[string]any{"a": []string{"x"}}, 4)
	if err != nil {
		t.Fatalf("MarshalWithIndent returned error: %v", err)
	}
	if want := "a:\n    - x\n"; string(got) != want {
		t.Fatalf("MarshalWithIndent() = %q, want %q", got, want)
	}
}
