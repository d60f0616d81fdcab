package common

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/crmarques/restrecord/yamlutil"
)

const (
	OutputAuto = "auto"
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

func ValidateOutputFormat(format string) error {
	switch format {
	case OutputAuto, OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return ValidationError("invalid output format: use auto, text, json, or yaml", nil)
	}
}

// WriteOutput renders value in format. Auto renders JSON, indented when
// stdout is a terminal. A non-empty jq expression is applied to the
// structured form first and each result is written on its own.
func WriteOutput[T any](command *cobra.Command, flags *GlobalFlags, value T, renderText func(io.Writer, T) error) error {
	if isNilOutputValue(value) {
		return nil
	}

	format := OutputAuto
	expression := ""
	if flags != nil {
		format = flags.Output
		expression = strings.TrimSpace(flags.JQ)
	}
	if expression != "" {
		results, err := applyJQ(expression, value)
		if err != nil {
			return err
		}
		for _, result := range results {
			if err := writeStructured(command, format, result); err != nil {
				return err
			}
		}
		return nil
	}

	if format == OutputText {
		if renderText != nil {
			return renderText(command.OutOrStdout(), value)
		}
		_, err := fmt.Fprintln(command.OutOrStdout(), value)
		return err
	}
	return writeStructured(command, format, value)
}

func writeStructured(command *cobra.Command, format string, value any) error {
	switch format {
	case "", OutputAuto, OutputJSON:
		var (
			encoded []byte
			err     error
		)
		if format == OutputJSON || IsTerminalWriter(command.OutOrStdout()) {
			encoded, err = json.MarshalIndent(value, "", "  ")
		} else {
			encoded, err = json.Marshal(value)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(command.OutOrStdout(), string(encoded))
		return err
	case OutputText:
		if text, ok := value.(string); ok {
			_, err := fmt.Fprintln(command.OutOrStdout(), text)
			return err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(command.OutOrStdout(), string(encoded))
		return err
	case OutputYAML:
		encoded, err := yamlutil.Marshal(value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(command.OutOrStdout(), string(encoded))
		return err
	default:
		return ValidationError("invalid output format: use auto, text, json, or yaml", nil)
	}
}

func applyJQ(expression string, value any) ([]any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, ValidationError("invalid jq expression", err)
	}

	// gojq only understands plain JSON values.
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(encoded, &input); err != nil {
		return nil, err
	}

	var results []any
	iter := query.Run(input)
	for {
		result, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := result.(error); ok {
			return nil, ValidationError("jq evaluation failed", err)
		}
		results = append(results, result)
	}
	return results, nil
}

func isNilOutputValue[T any](value T) bool {
	anyValue := any(value)
	if anyValue == nil {
		return true
	}

	reflected := reflect.ValueOf(anyValue)
	switch reflected.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return reflected.IsNil()
	default:
		return false
	}
}
