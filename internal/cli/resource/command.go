package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/internal/cli/common"
	"github.com/crmarques/restrecord/record"
)

// NewCommands returns the entity commands, all attached to the root.
func NewCommands(deps common.CommandDependencies, globalFlags *common.GlobalFlags) []*cobra.Command {
	return []*cobra.Command{
		newFindCommand(deps, globalFlags),
		newListCommand(deps, globalFlags),
		newCreateCommand(deps, globalFlags),
		newUpdateCommand(deps, globalFlags),
		newDeleteCommand(deps, globalFlags),
		newRawCommand(deps, globalFlags),
	}
}

// bindNestFlag registers --nest placeholder=value bindings for nested
// resources.
func bindNestFlag(command *cobra.Command, nest *[]string) {
	command.Flags().StringArrayVar(nest, "nest", nil, "bind a parent placeholder, e.g. company_id=7 (repeatable)")
}

func openClient(command *cobra.Command, deps common.CommandDependencies, globalFlags *common.GlobalFlags, nest []string) (*record.Client, error) {
	client, err := common.OpenClient(command, deps, globalFlags)
	if err != nil {
		return nil, err
	}

	bindings, err := common.ParseAssignments(nest)
	if err != nil {
		return nil, err
	}
	for placeholder, value := range bindings {
		client = client.Under(placeholder, value)
	}
	return client, nil
}

// entityWithID builds an entity that already carries id. Set bypasses the
// guard list so the identity can be assigned.
func entityWithID(client *record.Client, id string, attrs map[string]any) (*record.Entity, error) {
	entity, err := client.New(attrs)
	if err != nil {
		return nil, err
	}
	if err := entity.Set(client.Config().IdentityProperty, id); err != nil {
		return nil, err
	}
	return entity, nil
}

// saveEntity saves and writes the resulting attributes. A rejected save
// writes the server's errors and fails with a validation error.
func saveEntity(ctx context.Context, command *cobra.Command, globalFlags *common.GlobalFlags, entity *record.Entity) error {
	ok, err := entity.Save(ctx)
	if err != nil {
		return err
	}
	if !ok {
		if writeErr := common.WriteOutput(command, globalFlags, entity.Errors(), nil); writeErr != nil {
			return writeErr
		}
		return faults.NewTypedError(faults.ValidationError, "server rejected the entity", nil)
	}
	return common.WriteOutput(command, globalFlags, entity.Attributes(), renderAttributes)
}

func renderAttributes(w io.Writer, attrs map[string]any) error {
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}
