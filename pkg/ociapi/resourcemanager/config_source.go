package resourcemanager

import (
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

// ConfigSource is where a stack reads its Terraform configuration from. The
// concrete type is one of ZipUploadConfigSource, GitConfigSource,
// ObjectStorageConfigSource, CompartmentConfigSource or UnknownConfigSource.
type ConfigSource interface {
	ConfigSourceType() string
	WorkingDirectory() string
	Model() *model.Instance

	isConfigSource()
}

type configSourceCommon struct {
	inst *model.Instance
}

func (s configSourceCommon) ConfigSourceType() string { return s.inst.String("config_source_type") }
func (s configSourceCommon) WorkingDirectory() string { return s.inst.String("working_directory") }
func (s configSourceCommon) Model() *model.Instance   { return s.inst }
func (configSourceCommon) isConfigSource()            {}

type ZipUploadConfigSource struct {
	configSourceCommon
}

type GitConfigSource struct {
	configSourceCommon
}

func (s GitConfigSource) ConfigurationSourceProviderID() string {
	return s.inst.String("configuration_source_provider_id")
}
func (s GitConfigSource) RepositoryURL() string { return s.inst.String("repository_url") }
func (s GitConfigSource) BranchName() string    { return s.inst.String("branch_name") }

type ObjectStorageConfigSource struct {
	configSourceCommon
}

func (s ObjectStorageConfigSource) Region() string     { return s.inst.String("region") }
func (s ObjectStorageConfigSource) Namespace() string  { return s.inst.String("namespace") }
func (s ObjectStorageConfigSource) BucketName() string { return s.inst.String("bucket_name") }

// CompartmentConfigSource generates the configuration from the resources
// already present in a compartment.
type CompartmentConfigSource struct {
	configSourceCommon
}

func (s CompartmentConfigSource) CompartmentID() string { return s.inst.String("compartment_id") }
func (s CompartmentConfigSource) Region() string        { return s.inst.String("region") }
func (s CompartmentConfigSource) ServicesToDiscover() []string {
	return s.inst.Strings("services_to_discover")
}

// UnknownConfigSource is a source type this client does not know.
type UnknownConfigSource struct {
	configSourceCommon
}

// AsConfigSource returns the variant held by inst, or nil if inst is not a
// config source.
func AsConfigSource(inst *model.Instance) ConfigSource {
	if inst == nil || !inst.Descriptor().IsA("ConfigSource") {
		return nil
	}
	common := configSourceCommon{inst: inst}
	switch inst.TypeName() {
	case "ZipUploadConfigSource":
		return ZipUploadConfigSource{common}
	case "GitConfigSource":
		return GitConfigSource{common}
	case "ObjectStorageConfigSource":
		return ObjectStorageConfigSource{common}
	case "CompartmentConfigSource":
		return CompartmentConfigSource{common}
	}
	return UnknownConfigSource{common}
}
