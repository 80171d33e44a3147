package devops

import (
	"time"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

// DeployStage is one stage of a deployment pipeline.
type DeployStage struct {
	*model.Instance
}

// DeployStageFrom returns the deploy stage carried by resp.
func DeployStageFrom(resp *ociapi.Response) (DeployStage, bool) {
	if resp == nil || resp.Data == nil || !resp.Data.Descriptor().IsA("DeployStage") {
		return DeployStage{}, false
	}
	return DeployStage{resp.Data}, true
}

func (s DeployStage) ID() string               { return s.String("id") }
func (s DeployStage) DisplayName() string      { return s.String("display_name") }
func (s DeployStage) DeployPipelineID() string { return s.String("deploy_pipeline_id") }
func (s DeployStage) DeployStageType() string  { return s.String("deploy_stage_type") }
func (s DeployStage) LifecycleState() string   { return s.String("lifecycle_state") }
func (s DeployStage) TimeCreated() time.Time   { return s.Time("time_created") }

// RolloutPolicy returns the rollout policy variant, or nil when the stage has none.
func (s DeployStage) RolloutPolicy() RolloutPolicy {
	return AsRolloutPolicy(s.Model("rollout_policy"))
}

// PredecessorIDs returns the identifiers of the stages this one runs after.
func (s DeployStage) PredecessorIDs() []string {
	collection := s.Model("deploy_stage_predecessor_collection")
	if collection == nil {
		return nil
	}
	var ids []string
	for _, item := range collection.List("items") {
		if p, ok := item.(*model.Instance); ok && p != nil {
			ids = append(ids, p.String("id"))
		}
	}
	return ids
}

// CreateDeployStageDetails is the body of CreateDeployStage.
type CreateDeployStageDetails struct {
	*model.Instance
}

// NewCreateDeployStageDetails builds the create body. rollout_policy may be a
// RolloutPolicy, an instance or an attribute map.
func NewCreateDeployStageDetails(attrs map[string]any) (CreateDeployStageDetails, error) {
	inst, err := defaultCodec.Build("CreateDeployStageDetails", unwrapPolicies(attrs))
	if err != nil {
		return CreateDeployStageDetails{}, err
	}
	return CreateDeployStageDetails{inst}, nil
}

// UpdateDeployStageDetails is the body of UpdateDeployStage.
type UpdateDeployStageDetails struct {
	*model.Instance
}

func NewUpdateDeployStageDetails(attrs map[string]any) (UpdateDeployStageDetails, error) {
	inst, err := defaultCodec.Build("UpdateDeployStageDetails", unwrapPolicies(attrs))
	if err != nil {
		return UpdateDeployStageDetails{}, err
	}
	return UpdateDeployStageDetails{inst}, nil
}

// Predecessors builds the deploy_stage_predecessor_collection attribute value.
func Predecessors(ids ...string) map[string]any {
	items := make([]any, len(ids))
	for i, id := range ids {
		items[i] = map[string]any{"id": id}
	}
	return map[string]any{"items": items}
}

func unwrapPolicies(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if p, ok := v.(RolloutPolicy); ok {
			v = p.Model()
		}
		out[k] = v
	}
	return out
}
