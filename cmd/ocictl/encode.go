package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const encodeLongDesc = `
OVERVIEW
The encode command reads model attributes as YAML or JSON, keyed by their
snake_case names or wire keys, builds the model and prints the wire document
a client would send. Nested models are attribute maps, a discriminator inside
them selects the variant.
`

// encodeOptions is the set of options of the encode command.
type encodeOptions struct {
	Service string
	Type    string
	File    string
	Output  string
}

func newEncodeCommand() *cobra.Command {
	opts := &encodeOptions{}
	cmd := &cobra.Command{
		Use:   "encode --service SERVICE --type TYPE",
		Short: "Builds a service model from attributes and prints its wire document",
		Long:  encodeLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return opts.Run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.Service, "service", "s", "", "Service owning the model ("+serviceNames()+")")
	flags.StringVarP(&opts.Type, "type", "t", "", "Model type, e.g. CreateStackDetails")
	flags.StringVarP(&opts.File, "file", "f", "-", "YAML or JSON attributes, - reads stdin")
	flags.StringVarP(&opts.Output, "output", "o", "json", "Output format (json, yaml)")
	return cmd
}

// Validate ensures that option values make sense
func (o *encodeOptions) Validate() error {
	if o.Type == "" {
		return errors.New("--type is required")
	}
	return validateOutput(o.Output)
}

// Run executes the command
func (o *encodeOptions) Run(in io.Reader, out io.Writer) error {
	registry, err := lookupRegistry(o.Service)
	if err != nil {
		return err
	}
	raw, err := readInput(o.File, in)
	if err != nil {
		return err
	}

	var attrs map[string]any
	if err := yaml.Unmarshal(raw, &attrs); err != nil {
		return errors.Wrap(err, "input is not a YAML or JSON object")
	}

	inst, err := model.NewCodec(registry).Build(o.Type, attrs)
	if err != nil {
		return err
	}
	return printDocument(out, o.Output, model.Encode(inst))
}
