package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/certificatesmanagement"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
	"github.com/pkg/errors"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

var (
	_ resource.Resource                = &certificateAuthorityResource{}
	_ resource.ResourceWithConfigure   = &certificateAuthorityResource{}
	_ resource.ResourceWithImportState = &certificateAuthorityResource{}
)

type certificateAuthorityModel struct {
	ID               types.String `tfsdk:"id"`
	State            types.String `tfsdk:"state"`
	TimeCreated      types.String `tfsdk:"time_created"`
	SigningAlgorithm types.String `tfsdk:"signing_algorithm"`

	CompartmentID                types.String `tfsdk:"compartment_id"`
	Name                         types.String `tfsdk:"name"`
	KmsKeyID                     types.String `tfsdk:"kms_key_id"`
	ConfigType                   types.String `tfsdk:"config_type"`
	IssuerCertificateAuthorityID types.String `tfsdk:"issuer_certificate_authority_id"`
	SubjectCommonName            types.String `tfsdk:"subject_common_name"`

	// Updatable in place.
	Description  types.String `tfsdk:"description"`
	FreeformTags types.Map    `tfsdk:"freeform_tags"`
}

type certificateAuthorityResource struct {
	clients *ociClients
}

func NewCertificateAuthorityResource() resource.Resource {
	return new(certificateAuthorityResource)
}

func (r *certificateAuthorityResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_certificate_authority"
}

func (r *certificateAuthorityResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}

	clients, ok := req.ProviderData.(*ociClients)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Resource Configure Type",
			fmt.Sprintf("Expected *ociClients, got: %T. Please report this issue to the provider developers.",
				req.ProviderData,
			),
		)
		return
	}

	r.clients = clients
}

func (r *certificateAuthorityResource) Schema(_ context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	replace := []planmodifier.String{stringplanmodifier.RequiresReplace()}
	resp.Schema = schema.Schema{
		MarkdownDescription: "Manage private certificate authorities",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				MarkdownDescription: "OCID of the certificate authority",
				Computed:            true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(), // immutable
				},
			},
			"state": schema.StringAttribute{
				MarkdownDescription: "Lifecycle state of the certificate authority",
				Computed:            true,
			},
			"time_created": schema.StringAttribute{
				MarkdownDescription: "Creation time, RFC 3339",
				Computed:            true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(), // immutable
				},
			},
			"compartment_id": schema.StringAttribute{
				MarkdownDescription: "Compartment of the certificate authority",
				Required:            true,
				PlanModifiers:       replace,
			},
			"name": schema.StringAttribute{
				MarkdownDescription: "Name, unique within the tenancy",
				Required:            true,
				PlanModifiers:       replace,
			},
			"kms_key_id": schema.StringAttribute{
				MarkdownDescription: "OCID of the vault key signing the certificates",
				Required:            true,
				PlanModifiers:       replace,
			},
			"config_type": schema.StringAttribute{
				MarkdownDescription: "`ROOT_CA_GENERATED_INTERNALLY` or `SUBORDINATE_CA_ISSUED_BY_INTERNAL_CA`",
				Required:            true,
				PlanModifiers:       replace,
			},
			"issuer_certificate_authority_id": schema.StringAttribute{
				MarkdownDescription: "Issuing certificate authority of a subordinate certificate authority",
				Optional:            true,
				PlanModifiers:       replace,
			},
			"subject_common_name": schema.StringAttribute{
				MarkdownDescription: "Common name of the certificate authority subject",
				Required:            true,
				PlanModifiers:       replace,
			},
			"signing_algorithm": schema.StringAttribute{
				MarkdownDescription: "Signing algorithm, `SHA256_WITH_RSA` when not set",
				Optional:            true,
				Computed:            true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplaceIfConfigured(),
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"description": schema.StringAttribute{
				MarkdownDescription: "Description of the certificate authority",
				Optional:            true,
			},
			"freeform_tags": schema.MapAttribute{
				MarkdownDescription: "Free-form tags",
				ElementType:         types.StringType,
				Optional:            true,
			},
		},
	}
}

func (r *certificateAuthorityResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	var plan certificateAuthorityModel
	diags := req.Plan.Get(ctx, &plan)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	configType := plan.ConfigType.ValueString()
	if configType == certificatesmanagement.ConfigTypeSubordinateCaIssuedByInternalCa && plan.IssuerCertificateAuthorityID.ValueString() == "" {
		resp.Diagnostics.AddAttributeError(
			path.Root("issuer_certificate_authority_id"),
			"Error creating certificate authority",
			"A subordinate certificate authority needs issuer_certificate_authority_id",
		)
		return
	}

	caConfig := map[string]any{
		"config_type": configType,
		"subject":     map[string]any{"common_name": plan.SubjectCommonName.ValueString()},
	}
	if v := plan.IssuerCertificateAuthorityID.ValueString(); v != "" {
		caConfig["issuer_certificate_authority_id"] = v
	}
	if v := plan.SigningAlgorithm.ValueString(); v != "" {
		caConfig["signing_algorithm"] = v
	}

	attrs := map[string]any{
		"name":                         plan.Name.ValueString(),
		"compartment_id":               plan.CompartmentID.ValueString(),
		"kms_key_id":                   plan.KmsKeyID.ValueString(),
		"certificate_authority_config": caConfig,
	}
	if !plan.Description.IsNull() {
		attrs["description"] = plan.Description.ValueString()
	}
	tags, d := freeformTags(ctx, plan.FreeformTags)
	resp.Diagnostics.Append(d...)
	if resp.Diagnostics.HasError() {
		return
	}
	if tags != nil {
		attrs["freeform_tags"] = tags
	}

	details, err := certificatesmanagement.NewCreateCertificateAuthorityDetails(attrs)
	if err != nil {
		resp.Diagnostics.AddError(
			"Error creating certificate authority",
			"Could not build the create request: "+err.Error(),
		)
		return
	}

	result, err := r.clients.certificatesOps.CreateCertificateAuthorityAndWaitForState(ctx, details,
		[]string{certificatesmanagement.LifecycleStateActive, certificatesmanagement.LifecycleStateFailed},
		r.clients.waitConfig,
	)
	if err != nil {
		// the create was accepted, keep what is known in the state file.
		var compositeErr *waiter.CompositeOperationError
		if errors.As(err, &compositeErr) {
			for _, partial := range compositeErr.PartialResults {
				if ca, ok := certificatesmanagement.CertificateAuthorityFrom(partial); ok {
					resp.Diagnostics.Append(populateModelFromCertificateAuthority(ctx, &plan, ca)...)
					resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
				}
			}
		}
		resp.Diagnostics.AddError(
			"Error creating certificate authority",
			"Could not create certificate authority, unexpected error: "+err.Error(),
		)
		return
	}

	ca, _ := certificatesmanagement.CertificateAuthorityFrom(result)
	resp.Diagnostics.Append(populateModelFromCertificateAuthority(ctx, &plan, ca)...)
	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	if ca.LifecycleState() == certificatesmanagement.LifecycleStateFailed {
		resp.Diagnostics.AddError(
			"Error creating certificate authority",
			"Certificate authority "+ca.ID()+" failed: "+ca.LifecycleDetails(),
		)
	}
}

func (r *certificateAuthorityResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	// refresh tf state with latest data.
	var state certificateAuthorityModel
	diags := req.State.Get(ctx, &state)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	result, err := r.clients.certificates.GetCertificateAuthority(ctx, state.ID.ValueString())
	if err != nil {
		if ociapi.IsNotFound(err) {
			resp.State.RemoveResource(ctx) // remove from state, will force recreate.
			return
		}
		resp.Diagnostics.AddError(
			"Error reading certificate authority",
			"Could not fetch certificate authority with ID: "+state.ID.ValueString()+" : "+err.Error(),
		)
		return
	}

	ca, ok := certificatesmanagement.CertificateAuthorityFrom(result)
	if !ok || ca.LifecycleState() == certificatesmanagement.LifecycleStateDeleted {
		resp.State.RemoveResource(ctx)
		return
	}

	resp.Diagnostics.Append(populateModelFromCertificateAuthority(ctx, &state, ca)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// update tf state
	diags = resp.State.Set(ctx, &state)
	resp.Diagnostics.Append(diags...)
}

func (r *certificateAuthorityResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var plan, state certificateAuthorityModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	attrs := map[string]any{}
	if !plan.Description.Equal(state.Description) {
		if plan.Description.IsNull() {
			// explicit null clears the description on the service side.
			attrs["description"] = nil
		} else {
			attrs["description"] = plan.Description.ValueString()
		}
	}
	if !plan.FreeformTags.Equal(state.FreeformTags) {
		tags, d := freeformTags(ctx, plan.FreeformTags)
		resp.Diagnostics.Append(d...)
		if resp.Diagnostics.HasError() {
			return
		}
		if tags == nil {
			tags = map[string]any{}
		}
		attrs["freeform_tags"] = tags
	}

	details, err := certificatesmanagement.NewUpdateCertificateAuthorityDetails(attrs)
	if err != nil {
		resp.Diagnostics.AddError(
			"Error updating certificate authority",
			"Could not build the update request: "+err.Error(),
		)
		return
	}

	id := state.ID.ValueString()
	result, err := r.clients.certificatesOps.UpdateCertificateAuthorityAndWaitForState(ctx, id, details, "",
		[]string{certificatesmanagement.LifecycleStateActive},
		r.clients.waitConfig,
	)
	if err != nil {
		resp.Diagnostics.AddError(
			"Error updating certificate authority",
			"Could not update certificate authority with ID "+id+": "+err.Error(),
		)
		return
	}

	ca, _ := certificatesmanagement.CertificateAuthorityFrom(result)
	plan.ID = state.ID
	resp.Diagnostics.Append(populateModelFromCertificateAuthority(ctx, &plan, ca)...)
	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

func (r *certificateAuthorityResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	var state certificateAuthorityModel
	diags := req.State.Get(ctx, &state)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	_, err := r.clients.certificatesOps.DeleteCertificateAuthorityAndWaitForState(ctx, state.ID.ValueString(),
		[]string{certificatesmanagement.LifecycleStateDeleted},
		r.clients.waitConfig,
	)
	if err != nil {
		if ociapi.IsNotFound(err) {
			// resource already deleted from outside the terraform state.
			return
		}
		resp.Diagnostics.AddError(
			"Error deleting certificate authority",
			"Could not delete certificate authority with ID "+state.ID.ValueString()+": "+err.Error(),
		)
	}
}

func (r *certificateAuthorityResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)
}

func populateModelFromCertificateAuthority(ctx context.Context, m *certificateAuthorityModel, ca certificatesmanagement.CertificateAuthority) diag.Diagnostics {
	var diags diag.Diagnostics
	if ca.Instance == nil {
		return diags
	}

	m.ID = types.StringValue(ca.ID())
	m.State = types.StringValue(ca.LifecycleState())
	m.CompartmentID = types.StringValue(ca.CompartmentID())
	m.Name = types.StringValue(ca.Name())
	m.KmsKeyID = types.StringValue(ca.KmsKeyID())
	m.ConfigType = types.StringValue(ca.ConfigType())
	m.SubjectCommonName = types.StringValue(ca.CommonName())
	m.SigningAlgorithm = types.StringValue(ca.SigningAlgorithm())
	if t := ca.TimeCreated(); !t.IsZero() {
		m.TimeCreated = types.StringValue(t.UTC().Format(time.RFC3339))
	} else if m.TimeCreated.IsUnknown() {
		m.TimeCreated = types.StringNull()
	}

	// optional attributes stay null when the service leaves them empty.
	if v := ca.IssuerCertificateAuthorityID(); v != "" {
		m.IssuerCertificateAuthorityID = types.StringValue(v)
	}
	if v := ca.Description(); v != "" || !m.Description.IsNull() {
		m.Description = types.StringValue(v)
	}
	if tags := ca.FreeformTags(); len(tags) > 0 || !m.FreeformTags.IsNull() {
		if tags == nil {
			tags = map[string]string{}
		}
		var d diag.Diagnostics
		m.FreeformTags, d = types.MapValueFrom(ctx, types.StringType, tags)
		diags.Append(d...)
	}

	return diags
}

func freeformTags(ctx context.Context, m types.Map) (map[string]any, diag.Diagnostics) {
	if m.IsNull() || m.IsUnknown() {
		return nil, nil
	}
	var tags map[string]string
	diags := m.ElementsAs(ctx, &tags, false)
	out := make(map[string]any, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out, diags
}
