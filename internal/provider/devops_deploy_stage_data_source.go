package provider

import (
	"context"
	"fmt"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/devops"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

var (
	_ datasource.DataSource              = &deployStageDataSource{}
	_ datasource.DataSourceWithConfigure = &deployStageDataSource{}
)

type rolloutPolicyModel struct {
	PolicyType          types.String `tfsdk:"policy_type"`
	BatchDelayInSeconds types.Int64  `tfsdk:"batch_delay_in_seconds"`
	BatchCount          types.Int64  `tfsdk:"batch_count"`
	BatchPercentage     types.Int64  `tfsdk:"batch_percentage"`
}

type deployStageDataModel struct {
	DeployStageID    types.String        `tfsdk:"deploy_stage_id"`
	DisplayName      types.String        `tfsdk:"display_name"`
	DeployPipelineID types.String        `tfsdk:"deploy_pipeline_id"`
	DeployStageType  types.String        `tfsdk:"deploy_stage_type"`
	State            types.String        `tfsdk:"state"`
	PredecessorIDs   []types.String      `tfsdk:"predecessor_ids"`
	RolloutPolicy    *rolloutPolicyModel `tfsdk:"rollout_policy"`
}

type deployStageDataSource struct {
	clients *ociClients
}

func NewDeployStageDataSource() datasource.DataSource {
	return new(deployStageDataSource)
}

func (d *deployStageDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_devops_deploy_stage"
}

func (d *deployStageDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Read a DevOps deploy stage",
		Attributes: map[string]schema.Attribute{
			"deploy_stage_id": schema.StringAttribute{
				MarkdownDescription: "OCID of the deploy stage",
				Required:            true,
			},
			"display_name": schema.StringAttribute{
				MarkdownDescription: "Display name of the stage",
				Computed:            true,
			},
			"deploy_pipeline_id": schema.StringAttribute{
				MarkdownDescription: "Pipeline the stage belongs to",
				Computed:            true,
			},
			"deploy_stage_type": schema.StringAttribute{
				MarkdownDescription: "Type of the stage",
				Computed:            true,
			},
			"state": schema.StringAttribute{
				MarkdownDescription: "Lifecycle state of the stage",
				Computed:            true,
			},
			"predecessor_ids": schema.ListAttribute{
				MarkdownDescription: "Stages or the pipeline preceding this stage",
				ElementType:         types.StringType,
				Computed:            true,
			},
			"rollout_policy": schema.SingleNestedAttribute{
				MarkdownDescription: "Rollout policy of a compute instance group stage. " +
					"Only the batch attribute of the policy type is set.",
				Computed: true,
				Attributes: map[string]schema.Attribute{
					"policy_type": schema.StringAttribute{
						MarkdownDescription: "Policy type",
						Computed:            true,
					},
					"batch_delay_in_seconds": schema.Int64Attribute{
						MarkdownDescription: "Delay between batches",
						Computed:            true,
					},
					"batch_count": schema.Int64Attribute{
						MarkdownDescription: "Instances per batch of a by count policy",
						Computed:            true,
					},
					"batch_percentage": schema.Int64Attribute{
						MarkdownDescription: "Share of instances per batch of a by percentage policy",
						Computed:            true,
					},
				},
			},
		},
	}
}

func (d *deployStageDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}

	clients, ok := req.ProviderData.(*ociClients)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected DataSource Configure Type",
			fmt.Sprintf("Expected *ociClients, got: %T. Please report this issue to the provider developers.",
				req.ProviderData,
			),
		)
		return
	}

	d.clients = clients
}

func (d *deployStageDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var model deployStageDataModel
	diags := req.Config.Get(ctx, &model)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	result, err := d.clients.deployStages.GetDeployStage(ctx, model.DeployStageID.ValueString())
	if err != nil {
		summary := "Could not read deploy stage " + model.DeployStageID.ValueString() + ": " + err.Error()
		if ociapi.IsNotFound(err) {
			summary = "Deploy stage " + model.DeployStageID.ValueString() + " does not exist"
		}
		resp.Diagnostics.AddError("Error reading DevOps deploy stage", summary)
		return
	}

	stage, ok := devops.DeployStageFrom(result)
	if !ok {
		resp.Diagnostics.AddError(
			"Error reading DevOps deploy stage",
			"The service returned no deploy stage for "+model.DeployStageID.ValueString(),
		)
		return
	}

	model.DisplayName = types.StringValue(stage.DisplayName())
	model.DeployPipelineID = types.StringValue(stage.DeployPipelineID())
	model.DeployStageType = types.StringValue(stage.DeployStageType())
	model.State = types.StringValue(stage.LifecycleState())

	model.PredecessorIDs = []types.String{}
	for _, id := range stage.PredecessorIDs() {
		model.PredecessorIDs = append(model.PredecessorIDs, types.StringValue(id))
	}

	model.RolloutPolicy = rolloutPolicyToModel(stage.RolloutPolicy())

	diags = resp.State.Set(ctx, &model)
	resp.Diagnostics.Append(diags...)
}

func rolloutPolicyToModel(p devops.RolloutPolicy) *rolloutPolicyModel {
	if p == nil {
		return nil
	}
	m := &rolloutPolicyModel{
		PolicyType:          types.StringValue(p.PolicyType()),
		BatchDelayInSeconds: types.Int64Value(p.BatchDelayInSeconds()),
		BatchCount:          types.Int64Null(),
		BatchPercentage:     types.Int64Null(),
	}
	switch v := p.(type) {
	case devops.LinearRolloutPolicyByCount:
		m.BatchCount = types.Int64Value(v.BatchCount())
	case devops.LinearRolloutPolicyByPercentage:
		m.BatchPercentage = types.Int64Value(v.BatchPercentage())
	}
	return m
}
