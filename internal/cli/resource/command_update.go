package resource

import (
	"github.com/spf13/cobra"

	"github.com/crmarques/restrecord/internal/cli/common"
)

func newUpdateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	flags := &mutationFlags{}

	command := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			attrs, err := flags.attributes(command, deps)
			if err != nil {
				return err
			}
			client, err := openClient(command, deps, globalFlags, flags.nest)
			if err != nil {
				return err
			}

			entity, err := entityWithID(client, args[0], attrs)
			if err != nil {
				return err
			}
			return saveEntity(command.Context(), command, globalFlags, entity)
		},
	}

	bindMutationFlags(command, flags)
	return command
}
