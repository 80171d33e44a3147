package devops

import (
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

// RolloutPolicy is one variant of the compute instance group rollout policy
// family. The concrete type is one of LinearRolloutPolicyByCount,
// LinearRolloutPolicyByPercentage or UnknownRolloutPolicy.
type RolloutPolicy interface {
	PolicyType() string
	BatchDelayInSeconds() int64
	Model() *model.Instance

	isRolloutPolicy()
}

// rolloutPolicyCommon carries the attributes shared by every variant.
type rolloutPolicyCommon struct {
	inst *model.Instance
}

func (p rolloutPolicyCommon) PolicyType() string         { return p.inst.String("policy_type") }
func (p rolloutPolicyCommon) BatchDelayInSeconds() int64 { return p.inst.Int("batch_delay_in_seconds") }
func (p rolloutPolicyCommon) Model() *model.Instance     { return p.inst }
func (rolloutPolicyCommon) isRolloutPolicy()             {}

// LinearRolloutPolicyByCount rolls out a fixed number of instances per batch.
type LinearRolloutPolicyByCount struct {
	rolloutPolicyCommon
}

func (p LinearRolloutPolicyByCount) BatchCount() int64 { return p.inst.Int("batch_count") }

// LinearRolloutPolicyByPercentage rolls out a share of the instances per batch.
type LinearRolloutPolicyByPercentage struct {
	rolloutPolicyCommon
}

func (p LinearRolloutPolicyByPercentage) BatchPercentage() int64 {
	return p.inst.Int("batch_percentage")
}

// UnknownRolloutPolicy is a policy type this client does not know.
type UnknownRolloutPolicy struct {
	rolloutPolicyCommon
}

// AsRolloutPolicy returns the variant held by inst, or nil if inst is not a
// rollout policy.
func AsRolloutPolicy(inst *model.Instance) RolloutPolicy {
	if inst == nil || !inst.Descriptor().IsA("ComputeInstanceGroupRolloutPolicy") {
		return nil
	}
	common := rolloutPolicyCommon{inst: inst}
	switch inst.TypeName() {
	case "ComputeInstanceGroupLinearRolloutPolicyByCount":
		return LinearRolloutPolicyByCount{common}
	case "ComputeInstanceGroupLinearRolloutPolicyByPercentage":
		return LinearRolloutPolicyByPercentage{common}
	}
	return UnknownRolloutPolicy{common}
}

// NewLinearRolloutPolicyByCount returns a by-count policy.
func NewLinearRolloutPolicyByCount(batchCount, batchDelayInSeconds int64) LinearRolloutPolicyByCount {
	inst := linearRolloutPolicyByCount.New().
		MustSet("batch_count", batchCount).
		MustSet("batch_delay_in_seconds", batchDelayInSeconds)
	return LinearRolloutPolicyByCount{rolloutPolicyCommon{inst: inst}}
}

// NewLinearRolloutPolicyByPercentage returns a by-percentage policy.
func NewLinearRolloutPolicyByPercentage(batchPercentage, batchDelayInSeconds int64) LinearRolloutPolicyByPercentage {
	inst := linearRolloutPolicyByPercentage.New().
		MustSet("batch_percentage", batchPercentage).
		MustSet("batch_delay_in_seconds", batchDelayInSeconds)
	return LinearRolloutPolicyByPercentage{rolloutPolicyCommon{inst: inst}}
}
