package provider

import (
	"context"
	"fmt"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/resourcemanager"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

var (
	_ datasource.DataSource              = &stacksDataSource{}
	_ datasource.DataSourceWithConfigure = &stacksDataSource{}
)

type stackSummaryModel struct {
	ID               types.String `tfsdk:"id"`
	DisplayName      types.String `tfsdk:"display_name"`
	State            types.String `tfsdk:"state"`
	TerraformVersion types.String `tfsdk:"terraform_version"`
}

type stacksDataModel struct {
	CompartmentID types.String        `tfsdk:"compartment_id"`
	State         types.String        `tfsdk:"state"`
	Stacks        []stackSummaryModel `tfsdk:"stacks"`
}

type stacksDataSource struct {
	clients *ociClients
}

func NewStacksDataSource() datasource.DataSource {
	return new(stacksDataSource)
}

func (d *stacksDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_resourcemanager_stacks"
}

func (d *stacksDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "List the Resource Manager stacks of a compartment",
		Attributes: map[string]schema.Attribute{
			"compartment_id": schema.StringAttribute{
				MarkdownDescription: "Compartment to list",
				Required:            true,
			},
			"state": schema.StringAttribute{
				MarkdownDescription: "Only list stacks in this lifecycle state",
				Optional:            true,
			},
			"stacks": schema.ListNestedAttribute{
				MarkdownDescription: "Stacks of the compartment",
				Computed:            true,
				NestedObject: schema.NestedAttributeObject{
					Attributes: map[string]schema.Attribute{
						"id": schema.StringAttribute{
							MarkdownDescription: "OCID of the stack",
							Computed:            true,
						},
						"display_name": schema.StringAttribute{
							MarkdownDescription: "Display name of the stack",
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
					},
				},
			},
		},
	}
}

func (d *stacksDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
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

func (d *stacksDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var model stacksDataModel
	diags := req.Config.Get(ctx, &model)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	if state := model.State.ValueString(); state != "" && !resourcemanager.StackLifecycleStateEnum.Contains(state) {
		resp.Diagnostics.AddAttributeError(
			path.Root("state"),
			"Invalid stack lifecycle state",
			fmt.Sprintf("%q is not one of %v", state, resourcemanager.StackLifecycleStateEnum.Values()),
		)
		return
	}

	result, err := d.clients.stacks.ListStacks(ctx, model.CompartmentID.ValueString(), model.State.ValueString())
	if err != nil {
		resp.Diagnostics.AddError(
			"Error reading Resource Manager stacks",
			"Could not list stacks of compartment "+model.CompartmentID.ValueString()+": "+err.Error(),
		)
		return
	}

	stacks := []stackSummaryModel{}
	for _, item := range result.Items {
		if !item.Descriptor().IsA("StackSummary") {
			continue
		}
		stacks = append(stacks, stackSummaryModel{
			ID:               types.StringValue(item.String("id")),
			DisplayName:      types.StringValue(item.String("display_name")),
			State:            types.StringValue(item.String("lifecycle_state")),
			TerraformVersion: types.StringValue(item.String("terraform_version")),
		})
	}

	model.Stacks = stacks
	diags = resp.State.Set(ctx, &model)
	resp.Diagnostics.Append(diags...)
}
