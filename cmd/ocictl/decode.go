package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const decodeLongDesc = `
OVERVIEW
The decode command reads a JSON wire document of a service model, resolves
its concrete type from the discriminator and prints the type, the structural
hash and the document as the model sees it. Enum values the model does not
know are logged and shown as UNKNOWN_ENUM_VALUE, attributes the model does
not declare are dropped.
`

// decodeOptions is the set of options of the decode command.
type decodeOptions struct {
	Service string
	Type    string
	File    string
	Output  string
}

type decodedDocument struct {
	Type     string         `json:"type"`
	Hash     string         `json:"hash"`
	Document map[string]any `json:"document"`
}

func newDecodeCommand() *cobra.Command {
	opts := &decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode --service SERVICE --type TYPE",
		Short: "Decodes a wire document into a service model",
		Long:  decodeLongDesc,
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
	flags.StringVarP(&opts.Type, "type", "t", "", "Declared model type, e.g. DeployStage")
	flags.StringVarP(&opts.File, "file", "f", "-", "JSON document to decode, - reads stdin")
	flags.StringVarP(&opts.Output, "output", "o", "json", "Output format (json, yaml)")
	return cmd
}

// Validate ensures that option values make sense
func (o *decodeOptions) Validate() error {
	if o.Type == "" {
		return errors.New("--type is required")
	}
	return validateOutput(o.Output)
}

// Run executes the command
func (o *decodeOptions) Run(in io.Reader, out io.Writer) error {
	registry, err := lookupRegistry(o.Service)
	if err != nil {
		return err
	}
	raw, err := readInput(o.File, in)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := cliJSON.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "input is not a JSON object")
	}

	codec := model.NewCodec(registry, model.WithSink(model.LogrusSink(log.StandardLogger())))
	inst, err := codec.Decode(doc, o.Type)
	if err != nil {
		return err
	}

	return printDocument(out, o.Output, decodedDocument{
		Type:     inst.TypeName(),
		Hash:     fmt.Sprintf("%016x", inst.Hash()),
		Document: codec.Encode(inst),
	})
}
