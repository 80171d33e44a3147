// Package devops is the client of the DevOps service, limited to deploy
// stages.
package devops

import (
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const (
	PolicyTypeLinearRolloutPolicyByCount      = "COMPUTE_INSTANCE_GROUP_LINEAR_ROLLOUT_POLICY_BY_COUNT"
	PolicyTypeLinearRolloutPolicyByPercentage = "COMPUTE_INSTANCE_GROUP_LINEAR_ROLLOUT_POLICY_BY_PERCENTAGE"
)

const (
	DeployStageLifecycleStateCreating = "CREATING"
	DeployStageLifecycleStateUpdating = "UPDATING"
	DeployStageLifecycleStateActive   = "ACTIVE"
	DeployStageLifecycleStateDeleting = "DELETING"
	DeployStageLifecycleStateDeleted  = "DELETED"
	DeployStageLifecycleStateFailed   = "FAILED"
)

var (
	DeployStageLifecycleStateEnum = model.NewEnumSet("DeployStageLifecycleState",
		DeployStageLifecycleStateCreating,
		DeployStageLifecycleStateUpdating,
		DeployStageLifecycleStateActive,
		DeployStageLifecycleStateDeleting,
		DeployStageLifecycleStateDeleted,
		DeployStageLifecycleStateFailed,
	)

	ComputeInstanceGroupRolloutPolicyPolicyTypeEnum = model.NewEnumSet("ComputeInstanceGroupRolloutPolicyPolicyType",
		PolicyTypeLinearRolloutPolicyByCount,
		PolicyTypeLinearRolloutPolicyByPercentage,
	)

	DeployStageTypeEnum = model.NewEnumSet("DeployStageType",
		"WAIT",
		"COMPUTE_INSTANCE_GROUP_ROLLING_DEPLOYMENT",
		"COMPUTE_INSTANCE_GROUP_BLUE_GREEN_DEPLOYMENT",
		"OKE_DEPLOYMENT",
		"DEPLOY_FUNCTION",
		"INVOKE_FUNCTION",
		"MANUAL_APPROVAL",
		"SHELL",
	)
)

// rolloutPolicyAttrs are shared by the rollout policy family.
var rolloutPolicyAttrs = []model.Attribute{
	model.Attr("policy_type", model.EnumType(ComputeInstanceGroupRolloutPolicyPolicyTypeEnum)),
	model.Attr("batch_delay_in_seconds", model.IntegerType),
}

var (
	computeInstanceGroupRolloutPolicy = model.NewDescriptor("ComputeInstanceGroupRolloutPolicy",
		rolloutPolicyAttrs...,
	).Discriminated("policy_type", map[string]string{
		PolicyTypeLinearRolloutPolicyByCount:      "ComputeInstanceGroupLinearRolloutPolicyByCount",
		PolicyTypeLinearRolloutPolicyByPercentage: "ComputeInstanceGroupLinearRolloutPolicyByPercentage",
	})

	linearRolloutPolicyByCount = computeInstanceGroupRolloutPolicy.Extend(
		"ComputeInstanceGroupLinearRolloutPolicyByCount", PolicyTypeLinearRolloutPolicyByCount,
		model.Attr("batch_count", model.IntegerType),
	)

	linearRolloutPolicyByPercentage = computeInstanceGroupRolloutPolicy.Extend(
		"ComputeInstanceGroupLinearRolloutPolicyByPercentage", PolicyTypeLinearRolloutPolicyByPercentage,
		model.Attr("batch_percentage", model.IntegerType),
	)

	deployStagePredecessor = model.NewDescriptor("DeployStagePredecessor",
		model.Attr("id", model.StringType),
	)

	deployStagePredecessorCollection = model.NewDescriptor("DeployStagePredecessorCollection",
		model.Attr("items", model.ListOf(model.ModelType("DeployStagePredecessor"))),
	)

	deployStage = model.NewDescriptor("DeployStage",
		model.Attr("id", model.StringType),
		model.Attr("description", model.StringType),
		model.Attr("display_name", model.StringType),
		model.Attr("project_id", model.StringType),
		model.Attr("deploy_pipeline_id", model.StringType),
		model.Attr("compartment_id", model.StringType),
		model.Attr("deploy_stage_type", model.EnumType(DeployStageTypeEnum)),
		model.Attr("time_created", model.TimestampType),
		model.Attr("time_updated", model.TimestampType),
		model.Attr("lifecycle_state", model.EnumType(DeployStageLifecycleStateEnum)),
		model.Attr("lifecycle_details", model.StringType),
		model.Attr("deploy_stage_predecessor_collection", model.ModelType("DeployStagePredecessorCollection")),
		model.Attr("compute_instance_group_deploy_environment_id", model.StringType),
		model.Attr("deployment_spec_deploy_artifact_id", model.StringType),
		model.Attr("rollout_policy", model.ModelType("ComputeInstanceGroupRolloutPolicy")),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
		model.Attr("system_tags", model.MapOf(model.MapOf(model.AnyType))),
	)

	deployStageSummary = model.NewDescriptor("DeployStageSummary",
		model.Attr("id", model.StringType),
		model.Attr("display_name", model.StringType),
		model.Attr("deploy_pipeline_id", model.StringType),
		model.Attr("deploy_stage_type", model.EnumType(DeployStageTypeEnum)),
		model.Attr("lifecycle_state", model.EnumType(DeployStageLifecycleStateEnum)),
		model.Attr("time_created", model.TimestampType),
	)

	createDeployStageDetails = model.NewDescriptor("CreateDeployStageDetails",
		model.Attr("description", model.StringType),
		model.Attr("display_name", model.StringType),
		model.Attr("deploy_pipeline_id", model.StringType),
		model.Attr("deploy_stage_type", model.EnumType(DeployStageTypeEnum)).WithDefault("COMPUTE_INSTANCE_GROUP_ROLLING_DEPLOYMENT"),
		model.Attr("deploy_stage_predecessor_collection", model.ModelType("DeployStagePredecessorCollection")),
		model.Attr("compute_instance_group_deploy_environment_id", model.StringType),
		model.Attr("deployment_spec_deploy_artifact_id", model.StringType),
		model.Attr("rollout_policy", model.ModelType("ComputeInstanceGroupRolloutPolicy")),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
	)

	updateDeployStageDetails = model.NewDescriptor("UpdateDeployStageDetails",
		model.Attr("description", model.StringType),
		model.Attr("display_name", model.StringType),
		model.Attr("deploy_stage_predecessor_collection", model.ModelType("DeployStagePredecessorCollection")),
		model.Attr("rollout_policy", model.ModelType("ComputeInstanceGroupRolloutPolicy")),
		model.Attr("freeform_tags", model.MapOf(model.StringType)),
		model.Attr("defined_tags", model.MapOf(model.MapOf(model.AnyType))),
	)
)

// Registry holds every model of the service.
var Registry = model.MustNewRegistry(
	computeInstanceGroupRolloutPolicy,
	linearRolloutPolicyByCount,
	linearRolloutPolicyByPercentage,
	deployStagePredecessor,
	deployStagePredecessorCollection,
	deployStage,
	deployStageSummary,
	createDeployStageDetails,
	updateDeployStageDetails,
)

var defaultCodec = model.NewCodec(Registry)
