package provider

import (
	"context"
	"fmt"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/resourcemanager"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

var (
	_ datasource.DataSource              = &stackDataSource{}
	_ datasource.DataSourceWithConfigure = &stackDataSource{}
)

type stackDataModel struct {
	StackID          types.String `tfsdk:"stack_id"`
	CompartmentID    types.String `tfsdk:"compartment_id"`
	DisplayName      types.String `tfsdk:"display_name"`
	Description      types.String `tfsdk:"description"`
	State            types.String `tfsdk:"state"`
	TerraformVersion types.String `tfsdk:"terraform_version"`
	ConfigSourceType types.String `tfsdk:"config_source_type"`
	WorkingDirectory types.String `tfsdk:"working_directory"`
	Variables        types.Map    `tfsdk:"variables"`
}

type stackDataSource struct {
	clients *ociClients
}

func NewStackDataSource() datasource.DataSource {
	return new(stackDataSource)
}

func (d *stackDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_resourcemanager_stack"
}

func (d *stackDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Read a Resource Manager stack",
		Attributes: map[string]schema.Attribute{
			"stack_id": schema.StringAttribute{
				MarkdownDescription: "OCID of the stack",
				Required:            true,
			},
			"compartment_id": schema.StringAttribute{
				MarkdownDescription: "Compartment of the stack",
				Computed:            true,
			},
			"display_name": schema.StringAttribute{
				MarkdownDescription: "Display name of the stack",
				Computed:            true,
			},
			"description": schema.StringAttribute{
				MarkdownDescription: "Description of the stack",
				Computed:            true,
			},
			"state": schema.StringAttribute{
				MarkdownDescription: "Lifecycle state of the stack",
				Computed:            true,
			},
			"terraform_version": schema.StringAttribute{
				MarkdownDescription: "Terraform version the stack runs with",
				Computed:            true,
			},
			"config_source_type": schema.StringAttribute{
				MarkdownDescription: "Where the configuration comes from, e.g. `ZIP_UPLOAD` or `GIT_CONFIG_SOURCE`",
				Computed:            true,
			},
			"working_directory": schema.StringAttribute{
				MarkdownDescription: "Directory of the configuration root within the source",
				Computed:            true,
			},
			"variables": schema.MapAttribute{
				MarkdownDescription: "Terraform variables of the stack",
				ElementType:         types.StringType,
				Computed:            true,
			},
		},
	}
}

func (d *stackDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
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

func (d *stackDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var model stackDataModel
	diags := req.Config.Get(ctx, &model)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	result, err := d.clients.stacks.GetStack(ctx, model.StackID.ValueString())
	if err != nil {
		summary := "Could not read stack " + model.StackID.ValueString() + ": " + err.Error()
		if ociapi.IsNotFound(err) {
			summary = "Stack " + model.StackID.ValueString() + " does not exist"
		}
		resp.Diagnostics.AddError("Error reading Resource Manager stack", summary)
		return
	}

	stack, ok := resourcemanager.StackFrom(result)
	if !ok {
		resp.Diagnostics.AddError(
			"Error reading Resource Manager stack",
			"The service returned no stack for "+model.StackID.ValueString(),
		)
		return
	}

	model.CompartmentID = types.StringValue(stack.CompartmentID())
	model.DisplayName = types.StringValue(stack.DisplayName())
	model.Description = types.StringValue(stack.Description())
	model.State = types.StringValue(stack.LifecycleState())
	model.TerraformVersion = types.StringValue(stack.TerraformVersion())
	model.ConfigSourceType = types.StringNull()
	model.WorkingDirectory = types.StringNull()
	if source := stack.ConfigSource(); source != nil {
		model.ConfigSourceType = types.StringValue(source.ConfigSourceType())
		model.WorkingDirectory = types.StringValue(source.WorkingDirectory())
	}

	variables := stack.Variables()
	if variables == nil {
		variables = map[string]string{}
	}
	model.Variables, diags = types.MapValueFrom(ctx, types.StringType, variables)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	diags = resp.State.Set(ctx, &model)
	resp.Diagnostics.Append(diags...)
}
