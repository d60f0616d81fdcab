package common

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newCommandWithStdin(input string) *cobra.Command {
	command := &cobra.Command{}
	command.SetIn(strings.NewReader(input))
	return command
}

func TestReadOptionalInputWithFileDashReadsStdin(t *testing.T) {
	t.Parallel()

	command := newCommandWithStdin("  {\"name\":\"value\"}  ")

	data, err := ReadOptionalInput(command, afero.NewMemMapFs(), InputFlags{Payload: stdinFileIndicator})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{\"name\":\"value\"}" {
		t.Fatalf("unexpected payload: %q", string(data))
	}
}

func TestReadOptionalInputWithFileDashEmptyInputReportsRequiredError(t *testing.T) {
	t.Parallel()

	command := newCommandWithStdin("   \n")

	_, err := ReadOptionalInput(command, afero.NewMemMapFs(), InputFlags{Payload: stdinFileIndicator})
	if err == nil {
		t.Fatalf("expected error for empty stdin")
	}
	if err.Error() != MissingInputMessage {
		t.Fatalf("expected message %q, got %q", MissingInputMessage, err.Error())
	}
}

func TestReadOptionalInputWithoutPayloadReturnsNil(t *testing.T) {
	t.Parallel()

	command := newCommandWithStdin("{\"ignored\":true}")

	data, err := ReadOptionalInput(command, afero.NewMemMapFs(), InputFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil data, got %q", string(data))
	}
}

func TestReadOptionalInputFromFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/payload.yaml", []byte("name: Ada\n"), 0o600); err != nil {
		t.Fatalf("failed to write payload: %v", err)
	}

	data, err := ReadOptionalInput(&cobra.Command{}, fs, InputFlags{Payload: "/payload.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "name: Ada\n" {
		t.Fatalf("unexpected payload %q", data)
	}

	if _, err := ReadOptionalInput(&cobra.Command{}, fs, InputFlags{Payload: "/missing.json"}); err == nil {
		t.Fatal("expected missing payload error")
	}
}

func TestReadOptionalInputRejectsOversizedStdin(t *testing.T) {
	t.Parallel()

	command := newCommandWithStdin(strings.Repeat("a", maxInputBytes+1))

	_, err := ReadOptionalInput(command, afero.NewMemMapFs(), InputFlags{Payload: stdinFileIndicator})
	if err == nil {
		t.Fatal("expected oversized stdin error")
	}
	if !strings.Contains(err.Error(), "maximum supported size") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	fromJSON, err := DecodeObject([]byte(`{"id": 42, "name": "Ada"}`), OutputJSON)
	if err != nil {
		t.Fatalf("DecodeObject json returned error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"id": json.Number("42"), "name": "Ada"}, fromJSON); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	fromYAML, err := DecodeObject([]byte("id: 42\nname: Ada\n"), OutputYAML)
	if err != nil {
		t.Fatalf("DecodeObject yaml returned error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"id": 42, "name": "Ada"}, fromYAML); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}

	if _, err := DecodeObject([]byte(`[1,2]`), OutputJSON); err == nil {
		t.Fatal("expected non-object json to be rejected")
	}
	if _, err := DecodeObject([]byte(`{}`), "toml"); err == nil {
		t.Fatal("expected unknown format to be rejected")
	}
}
