// Package resourcemanager is the client of the Resource Manager service,
// limited to stacks.
package resourcemanager

import (
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const (
	ConfigSourceTypeZipUpload                 = "ZIP_UPLOAD"
	ConfigSourceTypeGitConfigSource           = "GIT_CONFIG_SOURCE"
	ConfigSourceTypeObjectStorageConfigSource = "OBJECT_STORAGE_CONFIG_SOURCE"
	ConfigSourceTypeCompartmentConfigSource   = "COMPARTMENT_CONFIG_SOURCE"
)

const (
	StackLifecycleStateCreating = "CREATING"
	StackLifecycleStateActive   = "ACTIVE"
	StackLifecycleStateDeleting = "DELETING"
	StackLifecycleStateDeleted  = "DELETED"
	StackLifecycleStateFailed   = "FAILED"
)

var (
	StackLifecycleStateEnum = model.NewEnumSet("StackLifecycleState",
		StackLifecycleStateCreating,
		StackLifecycleStateActive,
		StackLifecycleStateDeleting,
		StackLifecycleStateDeleted,
		StackLifecycleStateFailed,
	)

	ConfigSourceTypeEnum = model.NewEnumSet("ConfigSourceType",
		ConfigSourceTypeZipUpload,
		ConfigSourceTypeGitConfigSource,
		ConfigSourceTypeObjectStorageConfigSource,
		ConfigSourceTypeCompartmentConfigSource,
	)

	StackDriftStatusEnum = model.NewEnumSet("StackDriftStatus",
		"NOT_CHECKED",
		"IN_SYNC",
		"DRIFTED",
	)
)

var configSourceSubtypes = map[string]string{
	ConfigSourceTypeZipUpload:                 "ZipUploadConfigSource",
	ConfigSourceTypeGitConfigSource:           "GitConfigSource",
	ConfigSourceTypeObjectStorageConfigSource: "ObjectStorageConfigSource",
	ConfigSourceTypeCompartmentConfigSource:   "CompartmentConfigSource",
}

var createConfigSourceSubtypes = map[string]string{
	ConfigSourceTypeZipUpload:                 "CreateZipUploadConfigSourceDetails",
	ConfigSourceTypeGitConfigSource:           "CreateGitConfigSourceDetails",
	ConfigSourceTypeObjectStorageConfigSource: "CreateObjectStorageConfigSourceDetails",
	ConfigSourceTypeCompartmentConfigSource:   "CreateCompartmentConfigSourceDetails",
}

var (
	configSource = model.NewDescriptor("ConfigSource",
		model.Attr("config_source_type", model.EnumType(ConfigSourceTypeEnum)),
		model.Attr("working_directory", model.StringType),
	).Discriminated("config_source_type", configSourceSubtypes)

	zipUploadConfigSource = configSource.Extend("ZipUploadConfigSource", ConfigSourceTypeZipUpload)

	gitConfigSource = configSource.Extend("GitConfigSource", ConfigSourceTypeGitConfigSource,
		model.Attr("configuration_source_provider_id", model.StringType),
		model.Attr("repository_url", model.StringType),
		model.Attr("branch_name", model.StringType),
	)

	objectStorageConfigSource = configSource.Extend("ObjectStorageConfigSource", ConfigSourceTypeObjectStorageConfigSource,
		model.Attr("region", model.StringType),
		model.Attr("namespace", model.StringType),
		model.Attr("bucket_name", model.StringType),
	)

	compartmentConfigSource = configSource.Extend("CompartmentConfigSource", ConfigSourceTypeCompartmentConfigSource,
		model.Attr("compartment_id", model.StringType),
		model.Attr("region", model.StringType),
		model.Attr("services_to_discover", model.ListOf(model.StringType)),
	)

	createConfigSourceDetails = model.NewDescriptor("CreateConfigSourceDetails",
		model.Attr("config_source_type", model.EnumType(ConfigSourceTypeEnum)),
		model.Attr("working_directory", model.StringType),
	).Discriminated("config_source_type", createConfigSourceSubtypes)

	createZipUploadConfigSourceDetails = createConfigSourceDetails.Extend(
		"CreateZipUploadConfigSourceDetails", ConfigSourceTypeZipUpload,
		model.Attr("zip_file_base64_encoded", model.StringType),
	)

	createGitConfigSourceDetails = createConfigSourceDetails.Extend(
		"CreateGitConfigSourceDetails", ConfigSourceTypeGitConfigSource,
		model.Attr("configuration_source_provider_id", model.StringType),
		model.Attr("repository_url", model.StringType),
		model.Attr("branch_name", model.StringType),
	)

	createObjectStorageConfigSourceDetails = createConfigSourceDetails.Extend(
		"CreateObjectStorageConfigSourceDetails", ConfigSourceTypeObjectStorageConfigSource,
		model.Attr("region", model.StringType),
		model.Attr("namespace", model.StringType),
		model.Attr("bucket_name", model.StringType),
	)

	createCompartmentConfigSourceDetails = createConfigSourceDetails.Extend(
		"CreateCompartmentConfigSourceDetails", ConfigSourceTypeCompartmentConfigSource,
		model.Attr("compartment_id", model.StringType),
		model.Attr("region", model.StringType),
		model.Attr("services_to_discover", model.ListOf(model.StringType)),
	)

	stack = model.NewDescriptor("Stack",
		model.Attr("id", model.StringType),
		model.Attr("compartment_id", model.StringType),
		model.Attr("display_name", model.StringType),
		model.Attr("description", model.StringType),
		model.Attr("time_created", model.TimestampType),
		model.Attr("lifecycle_state", model.EnumType(StackLifecycleStateEnum)),
		model.Attr("config_source", model.ModelType("ConfigSource")),
		model.Attr("variables", model.MapOf(model.StringType)),
		model.Attr("terraform_version", model.StringType),
		model.Attr("stack_drift_status", model.EnumType(StackDriftStatusEnum)),
		model.Attr("time_drift_last_checked", model.TimestampType),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
	)

	stackSummary = model.NewDescriptor("StackSummary",
		model.Attr("id", model.StringType),
		model.Attr("compartment_id", model.StringType),
		model.Attr("display_name", model.StringType),
		model.Attr("description", model.StringType),
		model.Attr("time_created", model.TimestampType),
		model.Attr("lifecycle_state", model.EnumType(StackLifecycleStateEnum)),
		model.Attr("terraform_version", model.StringType),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
	)

	createStackDetails = model.NewDescriptor("CreateStackDetails",
		model.Attr("compartment_id", model.StringType),
		model.Attr("display_name", model.StringType),
		model.Attr("description", model.StringType),
		model.Attr("config_source", model.ModelType("CreateConfigSourceDetails")),
		model.Attr("variables", model.MapOf(model.StringType)),
		model.Attr("terraform_version", model.StringType),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
	)

	updateStackDetails = model.NewDescriptor("UpdateStackDetails",
		model.Attr("display_name", model.StringType),
		model.Attr("description", model.StringType),
		model.Attr("variables", model.MapOf(model.StringType)),
		model.Attr("terraform_version", model.StringType),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
	)
)

// Registry holds every model of the service.
var Registry = model.MustNewRegistry(
	configSource,
	zipUploadConfigSource,
	gitConfigSource,
	objectStorageConfigSource,
	compartmentConfigSource,
	createConfigSourceDetails,
	createZipUploadConfigSourceDetails,
	createGitConfigSourceDetails,
	createObjectStorageConfigSourceDetails,
	createCompartmentConfigSourceDetails,
	stack,
	stackSummary,
	createStackDetails,
	updateStackDetails,
)

var defaultCodec = model.NewCodec(Registry)
