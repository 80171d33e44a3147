package resourcemanager

import (
	"encoding/base64"
	"time"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

// Stack is a Terraform configuration managed by Resource Manager.
type Stack struct {
	*model.Instance
}

// StackFrom returns the stack carried by resp.
func StackFrom(resp *ociapi.Response) (Stack, bool) {
	if resp == nil || resp.Data == nil || !resp.Data.Descriptor().IsA("Stack") {
		return Stack{}, false
	}
	return Stack{resp.Data}, true
}

func (s Stack) ID() string                      { return s.String("id") }
func (s Stack) CompartmentID() string           { return s.String("compartment_id") }
func (s Stack) DisplayName() string             { return s.String("display_name") }
func (s Stack) Description() string             { return s.String("description") }
func (s Stack) LifecycleState() string          { return s.String("lifecycle_state") }
func (s Stack) TerraformVersion() string        { return s.String("terraform_version") }
func (s Stack) StackDriftStatus() string        { return s.String("stack_drift_status") }
func (s Stack) TimeCreated() time.Time          { return s.Time("time_created") }
func (s Stack) Variables() map[string]string    { return s.StringMap("variables") }
func (s Stack) FreeformTags() map[string]string { return s.StringMap("freeform_tags") }

// ConfigSource returns the variant of the stack's config source, nil when the
// stack carries none.
func (s Stack) ConfigSource() ConfigSource {
	return AsConfigSource(s.Model("config_source"))
}

// CreateStackDetails is the body of CreateStack.
type CreateStackDetails struct {
	*model.Instance
}

// NewCreateStackDetails builds the create body. config_source is an attribute
// map whose config_source_type selects the variant.
func NewCreateStackDetails(attrs map[string]any) (CreateStackDetails, error) {
	inst, err := defaultCodec.Build("CreateStackDetails", attrs)
	if err != nil {
		return CreateStackDetails{}, err
	}
	return CreateStackDetails{inst}, nil
}

// UpdateStackDetails is the body of UpdateStack.
type UpdateStackDetails struct {
	*model.Instance
}

func NewUpdateStackDetails(attrs map[string]any) (UpdateStackDetails, error) {
	inst, err := defaultCodec.Build("UpdateStackDetails", attrs)
	if err != nil {
		return UpdateStackDetails{}, err
	}
	return UpdateStackDetails{inst}, nil
}

// ZipUpload returns the config source attributes of a zipped configuration.
func ZipUpload(zip []byte, workingDirectory string) map[string]any {
	attrs := map[string]any{
		"config_source_type":      ConfigSourceTypeZipUpload,
		"zip_file_base64_encoded": base64.StdEncoding.EncodeToString(zip),
	}
	if workingDirectory != "" {
		attrs["working_directory"] = workingDirectory
	}
	return attrs
}
