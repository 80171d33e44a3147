package devops

import (
	"context"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
)

// DevopsClientCompositeOperations chains mutating calls with a wait for the
// resulting lifecycle state.
type DevopsClientCompositeOperations struct {
	client *DevopsClient
	waiter *waiter.Waiter
}

func NewDevopsClientCompositeOperations(client *DevopsClient, w *waiter.Waiter) *DevopsClientCompositeOperations {
	if w == nil {
		w = waiter.New()
	}
	return &DevopsClientCompositeOperations{client: client, waiter: w}
}

func (c *DevopsClientCompositeOperations) CreateDeployStageAndWaitForState(ctx context.Context, details CreateDeployStageDetails, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.CreateAndWait(ctx, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.CreateDeployStage(ctx, details)
	}, c.client.GetDeployStage, states, cfg)
}

func (c *DevopsClientCompositeOperations) UpdateDeployStageAndWaitForState(ctx context.Context, deployStageID string, details UpdateDeployStageDetails, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.UpdateAndWait(ctx, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.UpdateDeployStage(ctx, deployStageID, details)
	}, c.client.GetDeployStage, states, cfg)
}

func (c *DevopsClientCompositeOperations) DeleteDeployStageAndWaitForState(ctx context.Context, deployStageID string, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.DeleteAndWait(ctx, deployStageID, c.client.GetDeployStage, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.DeleteDeployStage(ctx, deployStageID)
	}, states, cfg)
}
