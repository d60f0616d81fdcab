package resource

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crmarques/restrecord/internal/cli/common"
	"github.com/crmarques/restrecord/record"
)

type rawFlags struct {
	fields  []string
	queries []string
	files   []string
	headers []string
	nest    []string
}

func newRawCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	flags := &rawFlags{}

	command := &cobra.Command{
		Use:   "raw <METHOD> <path>",
		Short: "Send a request to a path on the resource base URI",
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}
			client, err := openClient(command, deps, globalFlags, flags.nest)
			if err != nil {
				return err
			}

			response, err := client.Raw(command.Context(), args[0], args[1], input)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, globalFlags, response, renderRawResponse)
		},
	}

	command.Flags().StringArrayVar(&flags.fields, "field", nil, "body field key=value (repeatable)")
	command.Flags().StringArrayVarP(&flags.queries, "query", "q", nil, "query parameter key=value (repeatable)")
	command.Flags().StringArrayVar(&flags.files, "file", nil, "multipart file field=path (repeatable)")
	command.Flags().StringArrayVarP(&flags.headers, "header", "H", nil, "request header name=value (repeatable)")
	bindNestFlag(command, &flags.nest)
	return command
}

func (f *rawFlags) input() (record.RawInput, error) {
	var input record.RawInput

	fields, err := common.ParseAttributeAssignments(f.fields)
	if err != nil {
		return input, err
	}
	if len(fields) > 0 {
		input.Fields = fields
	}
	if input.Params, err = common.ParseAssignments(f.queries); err != nil {
		return input, err
	}
	if input.Files, err = common.ParseAssignments(f.files); err != nil {
		return input, err
	}
	if input.Headers, err = common.ParseAssignments(f.headers); err != nil {
		return input, err
	}
	return input, nil
}

func renderRawResponse(w io.Writer, response *record.RawResponse) error {
	if _, err := fmt.Fprintf(w, "status: %d success: %t\n", response.StatusCode, response.Success); err != nil {
		return err
	}
	if response.Body != nil {
		if _, err := fmt.Fprintln(w, response.Body); err != nil {
			return err
		}
	}
	if response.Errors != nil {
		if _, err := fmt.Fprintln(w, response.Errors); err != nil {
			return err
		}
	}
	return nil
}
