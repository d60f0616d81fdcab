package resource

import (
	"github.com/spf13/cobra"

	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/internal/cli/common"
)

func newFindCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var (
		params []string
		nest   []string
	)

	command := &cobra.Command{
		Use:   "find <id>",
		Short: "Fetch one entity by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := openClient(command, deps, globalFlags, nest)
			if err != nil {
				return err
			}
			extra, err := common.ParseAssignments(params)
			if err != nil {
				return err
			}

			entity, err := client.Find(command.Context(), args[0], extra)
			if err != nil {
				return err
			}
			if entity == nil {
				return faults.NewTypedError(faults.NotFoundError, client.ResourceName()+" "+args[0]+" not found", nil)
			}
			return common.WriteOutput(command, globalFlags, entity.Attributes(), renderAttributes)
		},
	}

	command.Flags().StringArrayVar(&params, "param", nil, "extra query parameter key=value (repeatable)")
	bindNestFlag(command, &nest)
	return command
}
