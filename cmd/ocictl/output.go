package main

import (
	"io"
	"os"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/certificatesmanagement"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/devops"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/resourcemanager"
)

var cliJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// registries maps the --service flag to the models of a service.
var registries = map[string]*model.Registry{
	certificatesmanagement.ServiceName: certificatesmanagement.Registry,
	devops.ServiceName:                 devops.Registry,
	resourcemanager.ServiceName:        resourcemanager.Registry,
}

func serviceNames() string {
	names := make([]string, 0, len(registries))
	for name := range registries {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func lookupRegistry(service string) (*model.Registry, error) {
	registry, ok := registries[service]
	if !ok {
		return nil, errors.Errorf("unknown service %q, expected one of: %s", service, serviceNames())
	}
	return registry, nil
}

func validateOutput(format string) error {
	switch format {
	case "json", "yaml":
		return nil
	}
	return errors.Errorf("unknown output format %q, expected json or yaml", format)
}

func readInput(file string, stdin io.Reader) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(file)
	return b, errors.Wrapf(err, "failed to read %s", file)
}

func printDocument(out io.Writer, format string, v any) error {
	var (
		b   []byte
		err error
	)
	switch format {
	case "yaml":
		b, err = yaml.Marshal(v)
	default:
		b, err = cliJSON.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		return errors.Wrap(err, "failed to render output")
	}
	_, err = out.Write(b)
	return err
}
