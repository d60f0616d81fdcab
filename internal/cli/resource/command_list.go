package resource

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/restrecord/collection"
	"github.com/crmarques/restrecord/internal/cli/common"
	"github.com/crmarques/restrecord/query"
)

type listFlags struct {
	where    []string
	or       bool
	orderBy  string
	orderDir string
	params   []string
	nest     []string
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	flags := &listFlags{}

	command := &cobra.Command{
		Use:   "list",
		Short: "Search the resource collection",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			find, err := flags.find()
			if err != nil {
				return err
			}
			client, err := openClient(command, deps, globalFlags, flags.nest)
			if err != nil {
				return err
			}

			items, err := client.FindAll(command.Context(), find)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, globalFlags, items.ToStructured(), renderCollection)
		},
	}

	command.Flags().StringArrayVarP(&flags.where, "where", "w", nil, "search condition property:operator:value (repeatable)")
	command.Flags().BoolVar(&flags.or, "or", false, "join conditions with OR instead of AND")
	command.Flags().StringVar(&flags.orderBy, "order-by", "", "property to order by")
	command.Flags().Var(common.NewEnumValue(&flags.orderDir, query.Asc, query.Desc), "order-dir", "order direction: ASC|DESC")
	command.Flags().StringArrayVar(&flags.params, "param", nil, "extra query parameter key=value (repeatable)")
	bindNestFlag(command, &flags.nest)
	return command
}

func (f *listFlags) find() (query.Find, error) {
	find := query.Find{
		OrderBy:  strings.TrimSpace(f.orderBy),
		OrderDir: f.orderDir,
	}
	for _, raw := range f.where {
		condition, err := parseCondition(raw)
		if err != nil {
			return query.Find{}, err
		}
		find.Conditions = append(find.Conditions, condition)
	}
	if f.or {
		find.LogicalOperator = query.Or
	}

	params, err := common.ParseAssignments(f.params)
	if err != nil {
		return query.Find{}, err
	}
	find.Params = params
	return find, nil
}

func parseCondition(raw string) (query.Condition, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return query.Condition{}, common.ValidationError("invalid condition "+raw+": expected property:operator:value", nil)
	}
	return query.Where(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), parts[2]), nil
}

func renderCollection(w io.Writer, structured collection.Structured) error {
	for _, attrs := range structured.Collection {
		if err := renderAttributes(w, attrs); err != nil {
			return err
		}
	}
	return nil
}
