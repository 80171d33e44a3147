package devops

import (
	"context"
	"net/http"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const (
	ServiceName = "devops"
	apiVersion  = "/20210630"
)

type ClientOption func(*DevopsClient)

// WithSink routes enum coercion diagnostics of decoded responses to sink.
func WithSink(sink model.Sink) ClientOption {
	return func(c *DevopsClient) {
		c.codec = model.NewCodec(Registry, model.WithSink(sink))
	}
}

type DevopsClient struct {
	http  *ociapi.HttpClient
	codec *model.Codec
}

func NewDevopsClient(hc *ociapi.HttpClient, opts ...ClientOption) *DevopsClient {
	c := &DevopsClient{http: hc, codec: defaultCodec}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *DevopsClient) Codec() *model.Codec {
	return c.codec
}

func (c *DevopsClient) CreateDeployStage(ctx context.Context, details CreateDeployStageDetails) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:       http.MethodPost,
		Path:         apiVersion + "/deployStages",
		Body:         details.Instance,
		ResponseType: "DeployStage",
	}, c.codec)
}

func (c *DevopsClient) GetDeployStage(ctx context.Context, deployStageID string) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:       http.MethodGet,
		Path:         apiVersion + "/deployStages/{deployStageId}",
		PathParams:   map[string]string{"deployStageId": deployStageID},
		ResponseType: "DeployStage",
	}, c.codec)
}

func (c *DevopsClient) UpdateDeployStage(ctx context.Context, deployStageID string, details UpdateDeployStageDetails) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:       http.MethodPut,
		Path:         apiVersion + "/deployStages/{deployStageId}",
		PathParams:   map[string]string{"deployStageId": deployStageID},
		Body:         details.Instance,
		ResponseType: "DeployStage",
	}, c.codec)
}

func (c *DevopsClient) DeleteDeployStage(ctx context.Context, deployStageID string) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:     http.MethodDelete,
		Path:       apiVersion + "/deployStages/{deployStageId}",
		PathParams: map[string]string{"deployStageId": deployStageID},
	}, c.codec)
}

func (c *DevopsClient) ListDeployStages(ctx context.Context, deployPipelineID string) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:   http.MethodGet,
		Path:     apiVersion + "/deployStages",
		Query:    map[string][]string{"deployPipelineId": {deployPipelineID}},
		ListType: "DeployStageSummary",
	}, c.codec)
}
