package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	configdomain "github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/internal/cli/common"
)

const redactedValue = "<redacted>"

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return newCommandWithPrompter(deps, globalFlags, terminalPrompter{})
}

func newCommandWithPrompter(
	deps common.CommandDependencies,
	globalFlags *common.GlobalFlags,
	prompter configPrompter,
) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Manage the resource catalog",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newPrintTemplateCommand(),
		newListCommand(deps, globalFlags),
		newShowCommand(deps, globalFlags),
		newInitCommand(deps, globalFlags, prompter),
	)

	return command
}

func newPrintTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print-template",
		Short: "Print a resource catalog YAML template with guidance comments",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			_, err := io.WriteString(command.OutOrStdout(), catalogTemplateYAML)
			return err
		},
	}
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resource names in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			catalog, err := common.OpenCatalog(deps, globalFlags)
			if err != nil {
				return err
			}
			loaded, err := catalog.Load()
			if err != nil {
				return err
			}
			return common.WriteOutput(command, globalFlags, loaded.Names(), func(w io.Writer, names []string) error {
				for _, name := range names {
					if _, err := fmt.Fprintln(w, name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newShowCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var showSecrets bool

	command := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration of the selected resource",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			resource, err := common.ResolveResource(deps, globalFlags)
			if err != nil {
				return err
			}
			effective := resource.WithDefaults()
			if !showSecrets {
				effective = redactResource(effective)
			}

			flags := *globalFlags
			if flags.Output == common.OutputAuto || flags.Output == common.OutputText {
				flags.Output = common.OutputYAML
			}
			return common.WriteOutput(command, &flags, effective, nil)
		},
	}

	command.Flags().BoolVar(&showSecrets, "show-secrets", false, "print credentials instead of redacting them")
	return command
}

func redactResource(resource configdomain.Resource) configdomain.Resource {
	redacted := resource.Clone()
	if redacted.Auth != nil && redacted.Auth.BasicAuth != nil && redacted.Auth.BasicAuth.Password != "" {
		redacted.Auth.BasicAuth.Password = redactedValue
	}
	return redacted
}

func selectedResourceName(globalFlags *common.GlobalFlags) string {
	if globalFlags == nil {
		return ""
	}
	return strings.TrimSpace(globalFlags.Resource)
}
