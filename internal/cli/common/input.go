package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

const (
	stdinFileIndicator  = "-"
	MissingInputMessage = "input is required: provide --payload <path|-> or stdin"
	maxInputBytes       = 4 << 20
)

// ReadOptionalInput returns nil when no payload flag is set and stdin is a
// terminal or empty.
func ReadOptionalInput(command *cobra.Command, fs afero.Fs, flags InputFlags) ([]byte, error) {
	if flags.Payload != "" && flags.Payload != stdinFileIndicator {
		file, err := fs.Open(flags.Payload)
		if err != nil {
			return nil, ValidationError("failed to open payload "+flags.Payload, err)
		}
		defer file.Close()

		data, err := readAllWithLimit(file, maxInputBytes)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, ValidationError("input is empty", nil)
		}
		return data, nil
	}

	if flags.Payload == "" {
		return nil, nil
	}

	inputReader := command.InOrStdin()
	if IsTerminalReader(inputReader) {
		return nil, ValidationError(MissingInputMessage, nil)
	}

	data, err := readAllWithLimit(inputReader, maxInputBytes)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ValidationError(MissingInputMessage, nil)
	}
	return data, nil
}

// DecodeObject decodes a JSON or YAML object payload. JSON numbers are kept
// as json.Number so identifiers round-trip without float conversion.
func DecodeObject(data []byte, format string) (map[string]any, error) {
	output := map[string]any{}

	switch format {
	case "", OutputJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&output); err != nil {
			return nil, ValidationError("invalid json input", err)
		}
	case OutputYAML:
		if err := yaml.Unmarshal(data, &output); err != nil {
			return nil, ValidationError("invalid yaml input", err)
		}
	default:
		return nil, ValidationError("invalid input format: use json or yaml", nil)
	}

	return output, nil
}

func readAllWithLimit(reader io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ValidationError("input exceeds maximum supported size", errors.New("input too large"))
	}
	return data, nil
}
