package resource

import (
	"github.com/spf13/cobra"

	"github.com/crmarques/restrecord/internal/cli/common"
)

type mutationFlags struct {
	set   []string
	input common.InputFlags
	nest  []string
}

func bindMutationFlags(command *cobra.Command, flags *mutationFlags) {
	command.Flags().StringArrayVarP(&flags.set, "set", "s", nil, "attribute key=value, dotted keys nest (repeatable)")
	common.BindInputFlags(command, &flags.input)
	bindNestFlag(command, &flags.nest)
}

// attributes merges the payload with --set assignments, which win.
func (f *mutationFlags) attributes(command *cobra.Command, deps common.CommandDependencies) (map[string]any, error) {
	attrs := map[string]any{}

	data, err := common.ReadOptionalInput(command, deps.FileSystem(), f.input)
	if err != nil {
		return nil, err
	}
	if data != nil {
		payload, err := common.DecodeObject(data, f.input.Format)
		if err != nil {
			return nil, err
		}
		for key, value := range payload {
			attrs[key] = value
		}
	}

	assigned, err := common.ParseAttributeAssignments(f.set)
	if err != nil {
		return nil, err
	}
	for key, value := range assigned {
		attrs[key] = value
	}

	if len(attrs) == 0 {
		return nil, common.ValidationError("no attributes: provide --set key=value or --payload", nil)
	}
	return attrs, nil
}

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	flags := &mutationFlags{}

	command := &cobra.Command{
		Use:   "create",
		Short: "Create a new entity",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			attrs, err := flags.attributes(command, deps)
			if err != nil {
				return err
			}
			client, err := openClient(command, deps, globalFlags, flags.nest)
			if err != nil {
				return err
			}

			entity, err := client.New(attrs)
			if err != nil {
				return err
			}
			return saveEntity(command.Context(), command, globalFlags, entity)
		},
	}

	bindMutationFlags(command, flags)
	return command
}
