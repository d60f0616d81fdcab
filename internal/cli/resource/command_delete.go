package resource

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/internal/cli/common"
)

const defaultDeleteConcurrency = 4

type deleteResult struct {
	ID      string `json:"id" yaml:"id"`
	Deleted bool   `json:"deleted" yaml:"deleted"`
}

func newDeleteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var (
		concurrency int
		nest        []string
	)

	command := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more entities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if concurrency < 1 {
				return common.ValidationError("flag --concurrency must be at least 1", nil)
			}
			client, err := openClient(command, deps, globalFlags, nest)
			if err != nil {
				return err
			}

			results := make([]deleteResult, len(args))
			group, ctx := errgroup.WithContext(command.Context())
			group.SetLimit(concurrency)
			for idx, id := range args {
				group.Go(func() error {
					entity, err := entityWithID(client, id, nil)
					if err != nil {
						return err
					}
					deleted, err := entity.Destroy(ctx)
					if err != nil {
						return err
					}
					results[idx] = deleteResult{ID: id, Deleted: deleted}
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			if err := common.WriteOutput(command, globalFlags, results, renderDeleteResults); err != nil {
				return err
			}
			for _, result := range results {
				if !result.Deleted {
					return faults.NewTypedError(faults.NotFoundError, client.ResourceName()+" "+result.ID+" was not deleted", nil)
				}
			}
			return nil
		},
	}

	command.Flags().IntVar(&concurrency, "concurrency", defaultDeleteConcurrency, "maximum parallel delete requests")
	bindNestFlag(command, &nest)
	return command
}

func renderDeleteResults(w io.Writer, results []deleteResult) error {
	for _, result := range results {
		status := "deleted"
		if !result.Deleted {
			status = "not deleted"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", result.ID, status); err != nil {
			return err
		}
	}
	return nil
}
