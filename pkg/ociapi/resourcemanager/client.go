package resourcemanager

import (
	"context"
	"net/http"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const (
	ServiceName = "resourcemanager"
	apiVersion  = "/20180917"
)

type ClientOption func(*ResourceManagerClient)

// WithSink routes enum coercion diagnostics of decoded responses to sink.
func WithSink(sink model.Sink) ClientOption {
	return func(c *ResourceManagerClient) {
		c.codec = model.NewCodec(Registry, model.WithSink(sink))
	}
}

type ResourceManagerClient struct {
	http  *ociapi.HttpClient
	codec *model.Codec
}

func NewResourceManagerClient(hc *ociapi.HttpClient, opts ...ClientOption) *ResourceManagerClient {
	c := &ResourceManagerClient{http: hc, codec: defaultCodec}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *ResourceManagerClient) Codec() *model.Codec {
	return c.codec
}

func (c *ResourceManagerClient) CreateStack(ctx context.Context, details CreateStackDetails) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:       http.MethodPost,
		Path:         apiVersion + "/stacks",
		Body:         details.Instance,
		ResponseType: "Stack",
	}, c.codec)
}

func (c *ResourceManagerClient) GetStack(ctx context.Context, stackID string) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:       http.MethodGet,
		Path:         apiVersion + "/stacks/{stackId}",
		PathParams:   map[string]string{"stackId": stackID},
		ResponseType: "Stack",
	}, c.codec)
}

func (c *ResourceManagerClient) UpdateStack(ctx context.Context, stackID string, details UpdateStackDetails) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:       http.MethodPut,
		Path:         apiVersion + "/stacks/{stackId}",
		PathParams:   map[string]string{"stackId": stackID},
		Body:         details.Instance,
		ResponseType: "Stack",
	}, c.codec)
}

func (c *ResourceManagerClient) DeleteStack(ctx context.Context, stackID string) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:     http.MethodDelete,
		Path:       apiVersion + "/stacks/{stackId}",
		PathParams: map[string]string{"stackId": stackID},
	}, c.codec)
}

// ListStacks lists the stacks of a compartment. The service answers with a
// bare JSON array.
func (c *ResourceManagerClient) ListStacks(ctx context.Context, compartmentID, lifecycleState string) (*ociapi.Response, error) {
	query := map[string][]string{"compartmentId": {compartmentID}}
	if lifecycleState != "" {
		query["lifecycleState"] = []string{lifecycleState}
	}
	return c.http.Invoke(ctx, ociapi.Call{
		Method:   http.MethodGet,
		Path:     apiVersion + "/stacks",
		Query:    query,
		ListType: "StackSummary",
	}, c.codec)
}
