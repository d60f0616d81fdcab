package config

import (
	"strings"

	"github.com/spf13/cobra"

	configdomain "github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/internal/cli/common"
)

type initFlags struct {
	name            string
	baseURI         string
	format          string
	nestedUnder     string
	guarded         string
	fileFields      string
	httpMethodParam string
	username        string
	password        string
	force           bool
}

func newInitCommand(
	deps common.CommandDependencies,
	globalFlags *common.GlobalFlags,
	prompter configPrompter,
) *cobra.Command {
	flags := &initFlags{}

	command := &cobra.Command{
		Use:   "init [resource-name]",
		Short: "Add a resource to the catalog from flags or interactively",
		Example: strings.Join([]string{
			"  restrecord config init",
			"  restrecord config init Employee --base-uri https://api.example.com --nested-under Company:company_id",
		}, "\n"),
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			catalog, err := common.OpenCatalog(deps, globalFlags)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				flags.name = args[0]
			}
			if flags.name == "" {
				flags.name = selectedResourceName(globalFlags)
			}

			if prompter.IsInteractive(command) {
				if err := flags.prompt(command, prompter); err != nil {
					return err
				}
			}

			resource := flags.resource()
			if resource.Name == "" {
				return common.ValidationError("resource name is required", nil)
			}
			if err := resource.WithDefaults().Validate(); err != nil {
				return err
			}

			replace := flags.force
			if err := catalog.Add(resource, replace); err != nil {
				if !faults.IsCategory(err, faults.ValidationError) || replace || !prompter.IsInteractive(command) {
					return err
				}
				confirmed, promptErr := prompter.Confirm(command, "Resource "+resource.Name+" exists. Replace it?", false)
				if promptErr != nil {
					return promptErr
				}
				if !confirmed {
					return err
				}
				if err := catalog.Add(resource, true); err != nil {
					return err
				}
			}

			return common.WriteOutput(command, globalFlags, "resource "+resource.Name+" written to "+catalog.Path(), nil)
		},
	}

	command.Flags().StringVar(&flags.baseURI, "base-uri", "", "API base URI")
	command.Flags().Var(common.NewEnumValue(&flags.format, configdomain.FormatJSON, configdomain.FormatXML), "format", "wire format: json|xml")
	command.Flags().StringVar(&flags.nestedUnder, "nested-under", "", "ancestors, e.g. Company:company_id")
	command.Flags().StringVar(&flags.guarded, "guarded", "", "comma-separated guarded attributes")
	command.Flags().StringVar(&flags.fileFields, "file-fields", "", "comma-separated file attributes")
	command.Flags().StringVar(&flags.httpMethodParam, "http-method-param", "", "body field carrying the overridden verb")
	command.Flags().StringVar(&flags.username, "username", "", "basic auth username")
	command.Flags().StringVar(&flags.password, "password", "", "basic auth password")
	command.Flags().BoolVar(&flags.force, "force", false, "replace an existing resource with the same name")
	return command
}

// prompt asks only for values not already supplied by flags.
func (f *initFlags) prompt(command *cobra.Command, prompter configPrompter) error {
	var err error
	if strings.TrimSpace(f.name) == "" {
		if f.name, err = prompter.Input(command, "Resource name: ", true); err != nil {
			return err
		}
	}
	if strings.TrimSpace(f.baseURI) == "" {
		if f.baseURI, err = prompter.Input(command, "Base URI: ", true); err != nil {
			return err
		}
	}
	if strings.TrimSpace(f.format) == "" {
		if f.format, err = prompter.Select(command, "Wire format", []string{configdomain.FormatJSON, configdomain.FormatXML}); err != nil {
			return err
		}
	}
	if strings.TrimSpace(f.nestedUnder) == "" {
		if f.nestedUnder, err = prompter.Input(command, "Nested under (optional, e.g. Company:company_id): ", false); err != nil {
			return err
		}
	}
	if strings.TrimSpace(f.username) == "" {
		if f.username, err = prompter.Input(command, "Basic auth username (optional): ", false); err != nil {
			return err
		}
	}
	if strings.TrimSpace(f.username) != "" && f.password == "" {
		if f.password, err = prompter.Secret(command, "Basic auth password: "); err != nil {
			return err
		}
	}
	return nil
}

func (f *initFlags) resource() configdomain.Resource {
	resource := configdomain.Resource{
		Name:            strings.TrimSpace(f.name),
		BaseURI:         strings.TrimSpace(f.baseURI),
		Format:          strings.TrimSpace(f.format),
		NestedUnder:     configdomain.ParseStringList(f.nestedUnder),
		Guarded:         configdomain.ParseStringList(f.guarded),
		FileFields:      configdomain.ParseStringList(f.fileFields),
		HTTPMethodParam: strings.TrimSpace(f.httpMethodParam),
	}
	if username := strings.TrimSpace(f.username); username != "" || f.password != "" {
		resource.Auth = &configdomain.Auth{BasicAuth: &configdomain.BasicAuth{Username: username, Password: f.password}}
	}
	return resource
}
