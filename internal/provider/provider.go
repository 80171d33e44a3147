package provider

import (
	"context"
	"os"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/certificatesmanagement"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/config"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/devops"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/resourcemanager"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
	log "github.com/sirupsen/logrus"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/ephemeral"
	"github.com/hashicorp/terraform-plugin-framework/function"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

var (
	_ provider.Provider                       = &OCIProvider{}
	_ provider.ProviderWithFunctions          = &OCIProvider{}
	_ provider.ProviderWithEphemeralResources = &OCIProvider{}
)

type OCIProviderModel struct {
	// Optional endpoint shared by every service, used instead of the
	// regional service endpoints.
	Endpoint types.String `tfsdk:"endpoint"`

	Token types.String `tfsdk:"token"`

	Region types.String `tfsdk:"region"`

	// Location and profile of the INI configuration file.
	ConfigFile types.String `tfsdk:"config_file"`
	Profile    types.String `tfsdk:"profile"`

	// Upper bound of a single wait for a lifecycle state.
	MaxWaitSeconds types.Int64 `tfsdk:"max_wait_seconds"`
}

// ociClients is handed to every resource and data source.
type ociClients struct {
	certificates    *certificatesmanagement.CertificatesManagementClient
	certificatesOps *certificatesmanagement.CertificatesManagementClientCompositeOperations
	stacks          *resourcemanager.ResourceManagerClient
	deployStages    *devops.DevopsClient
	waitConfig      waiter.Config
}

type OCIProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
}

func (p *OCIProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "oci"
	resp.Version = p.version
}

func (p *OCIProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description:         "Interact with Oracle Cloud Infrastructure.",
		MarkdownDescription: "Interact with Oracle Cloud Infrastructure",
		Attributes: map[string]schema.Attribute{
			"endpoint": schema.StringAttribute{
				MarkdownDescription: "Endpoint used for every service instead of the regional service endpoints. " +
					"May also be provided via OCI_ENDPOINT environment variable.",
				Optional: true, // can be fetched from env.
			},
			"token": schema.StringAttribute{
				MarkdownDescription: "Bearer token sent with every request. May also be provided via OCI_TOKEN environment variable.",
				Sensitive:           true,
				Optional:            true, // can be fetched from env.
			},
			"region": schema.StringAttribute{
				MarkdownDescription: "Region of the service endpoints. May also be provided via OCI_REGION environment variable " +
					"or the configuration file.",
				Optional: true,
			},
			"config_file": schema.StringAttribute{
				MarkdownDescription: "Path of the OCI configuration file, `~/.oci/config` by default. " +
					"May also be provided via OCI_CONFIG_FILE environment variable.",
				Optional: true,
			},
			"profile": schema.StringAttribute{
				MarkdownDescription: "Profile of the configuration file, `DEFAULT` by default. " +
					"May also be provided via OCI_CLI_PROFILE environment variable.",
				Optional: true,
			},
			"max_wait_seconds": schema.Int64Attribute{
				MarkdownDescription: "Maximum time to wait for a resource to reach a lifecycle state.",
				Optional:            true,
			},
		},
	}
}

func (p *OCIProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var conf OCIProviderModel
	diags := req.Config.Get(ctx, &conf)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	unknown := map[string]bool{
		"endpoint":    conf.Endpoint.IsUnknown(),
		"token":       conf.Token.IsUnknown(),
		"region":      conf.Region.IsUnknown(),
		"config_file": conf.ConfigFile.IsUnknown(),
		"profile":     conf.Profile.IsUnknown(),
	}
	for attribute, isUnknown := range unknown {
		if isUnknown {
			resp.Diagnostics.AddAttributeError(
				path.Root(attribute),
				"Unknown OCI provider configuration",
				"The provider cannot create the OCI API clients as there is an unknown configuration value for "+attribute+". "+
					"Either target apply the source of the value first, set the value statically in the configuration, or use the environment.",
			)
		}
	}

	if resp.Diagnostics.HasError() {
		return
	}

	cfg, err := config.Load(conf.ConfigFile.ValueString(), conf.Profile.ValueString())
	if err != nil {
		resp.Diagnostics.AddError(
			"Unable to load OCI configuration",
			"The OCI configuration file could not be read: "+err.Error(),
		)
		return
	}

	if !conf.Endpoint.IsNull() {
		cfg.Endpoint = conf.Endpoint.ValueString()
	}

	if !conf.Token.IsNull() {
		cfg.Token = conf.Token.ValueString()
	}

	if !conf.Region.IsNull() {
		cfg.Region = conf.Region.ValueString()
	}

	if !conf.MaxWaitSeconds.IsNull() {
		cfg.MaxWaitSeconds = int(conf.MaxWaitSeconds.ValueInt64())
	}

	if err := cfg.Validate(); err != nil {
		resp.Diagnostics.AddError(
			"Invalid OCI configuration",
			"Set the region or the endpoint in the provider configuration, the configuration file, "+
				"or the OCI_REGION / OCI_ENDPOINT environment variables: "+err.Error(),
		)
		return
	}

	clients, err := newOCIClients(cfg)
	if err != nil {
		resp.Diagnostics.AddError(
			"Unable to create OCI API Client",
			"An unexpected error occurred when creating the OCI API clients."+
				"If the error is not clear, please contact the provider developers.\n\n"+
				"OCI Client Error: "+err.Error(),
		)
		return
	}

	resp.DataSourceData = clients
	resp.ResourceData = clients
}

func newOCIClients(cfg *config.Config) (*ociClients, error) {
	// plugin stdout is reserved for the terraform protocol.
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.LogLevel)

	opts := []ociapi.HttpClientOption{
		ociapi.WithLogger(logger),
		ociapi.WithUserAgent(ociapi.UserAgent + " terraform-provider-oci"),
	}

	certificatesHTTP, err := cfg.NewClient(certificatesmanagement.ServiceName, opts...)
	if err != nil {
		return nil, err
	}
	stacksHTTP, err := cfg.NewClient(resourcemanager.ServiceName, opts...)
	if err != nil {
		return nil, err
	}
	devopsHTTP, err := cfg.NewClient(devops.ServiceName, opts...)
	if err != nil {
		return nil, err
	}

	sink := model.LogrusSink(logger)
	certificates := certificatesmanagement.NewCertificatesManagementClient(certificatesHTTP, certificatesmanagement.WithSink(sink))
	w := waiter.New(waiter.WithLogger(logger))

	return &ociClients{
		certificates:    certificates,
		certificatesOps: certificatesmanagement.NewCertificatesManagementClientCompositeOperations(certificates, w),
		stacks:          resourcemanager.NewResourceManagerClient(stacksHTTP, resourcemanager.WithSink(sink)),
		deployStages:    devops.NewDevopsClient(devopsHTTP, devops.WithSink(sink)),
		waitConfig:      cfg.WaiterConfig(),
	}, nil
}

func (p *OCIProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewCertificateAuthorityResource,
	}
}

func (p *OCIProvider) EphemeralResources(ctx context.Context) []func() ephemeral.EphemeralResource {
	return []func() ephemeral.EphemeralResource{}
}

func (p *OCIProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewStackDataSource,
		NewStacksDataSource,
		NewDeployStageDataSource,
	}
}

func (p *OCIProvider) Functions(ctx context.Context) []func() function.Function {
	return []func() function.Function{}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &OCIProvider{
			version: version,
		}
	}
}
