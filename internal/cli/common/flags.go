package common

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GlobalFlags struct {
	Config   string
	Resource string
	Debug    bool
	Output   string
	JQ       string
}

type InputFlags struct {
	Payload string
	Format  string
}

func BindGlobalFlags(command *cobra.Command, flags *GlobalFlags) {
	command.PersistentFlags().StringVarP(&flags.Config, "config", "c", "", "resource catalog path (default $RESTRECORD_CONFIG or ~/.restrecord/resources.yaml)")
	command.PersistentFlags().StringVarP(&flags.Resource, "resource", "r", "", "resource name from the catalog")
	command.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "enable debug output")
	command.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputAuto, "output format: auto|text|json|yaml")
	command.PersistentFlags().StringVar(&flags.JQ, "jq", "", "jq expression applied to structured output")
}

func BindInputFlags(command *cobra.Command, flags *InputFlags) {
	command.Flags().StringVarP(&flags.Payload, "payload", "f", "", "payload file path (use '-' to read object from stdin)")
	command.Flags().StringVarP(&flags.Format, "format", "i", OutputJSON, "input format: json|yaml")
}

// EnumValue is a string flag restricted to a fixed set of values. Matching is
// case-insensitive and the canonical spelling is stored.
type EnumValue struct {
	allowed []string
	value   *string
}

var _ pflag.Value = (*EnumValue)(nil)

func NewEnumValue(target *string, allowed ...string) *EnumValue {
	return &EnumValue{allowed: allowed, value: target}
}

func (e *EnumValue) String() string {
	if e == nil || e.value == nil {
		return ""
	}
	return *e.value
}

func (e *EnumValue) Set(raw string) error {
	trimmed := strings.TrimSpace(raw)
	for _, candidate := range e.allowed {
		if strings.EqualFold(candidate, trimmed) {
			*e.value = candidate
			return nil
		}
	}
	return ValidationError("invalid value "+raw+": use "+strings.Join(e.allowed, "|"), nil)
}

func (e *EnumValue) Type() string {
	return "string"
}
