package resourcemanager

import (
	"context"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
)

// ResourceManagerClientCompositeOperations chains mutating stack calls with
// a wait for the resulting lifecycle state.
type ResourceManagerClientCompositeOperations struct {
	client *ResourceManagerClient
	waiter *waiter.Waiter
}

func NewResourceManagerClientCompositeOperations(client *ResourceManagerClient, w *waiter.Waiter) *ResourceManagerClientCompositeOperations {
	if w == nil {
		w = waiter.New()
	}
	return &ResourceManagerClientCompositeOperations{client: client, waiter: w}
}

func (c *ResourceManagerClientCompositeOperations) CreateStackAndWaitForState(ctx context.Context, details CreateStackDetails, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.CreateAndWait(ctx, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.CreateStack(ctx, details)
	}, c.client.GetStack, states, cfg)
}

func (c *ResourceManagerClientCompositeOperations) UpdateStackAndWaitForState(ctx context.Context, stackID string, details UpdateStackDetails, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.UpdateAndWait(ctx, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.UpdateStack(ctx, stackID, details)
	}, c.client.GetStack, states, cfg)
}

func (c *ResourceManagerClientCompositeOperations) DeleteStackAndWaitForState(ctx context.Context, stackID string, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.DeleteAndWait(ctx, stackID, c.client.GetStack, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.DeleteStack(ctx, stackID)
	}, states, cfg)
}
