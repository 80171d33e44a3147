package certificatesmanagement

import (
	"context"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
)

// CertificatesManagementClientCompositeOperations chains mutating calls with a
// wait for the resulting lifecycle state.
type CertificatesManagementClientCompositeOperations struct {
	client *CertificatesManagementClient
	waiter *waiter.Waiter
}

func NewCertificatesManagementClientCompositeOperations(client *CertificatesManagementClient, w *waiter.Waiter) *CertificatesManagementClientCompositeOperations {
	if w == nil {
		w = waiter.New()
	}
	return &CertificatesManagementClientCompositeOperations{client: client, waiter: w}
}

func (c *CertificatesManagementClientCompositeOperations) CreateCertificateAuthorityAndWaitForState(ctx context.Context, details CreateCertificateAuthorityDetails, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.CreateAndWait(ctx, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.CreateCertificateAuthority(ctx, details)
	}, c.client.GetCertificateAuthority, states, cfg)
}

func (c *CertificatesManagementClientCompositeOperations) UpdateCertificateAuthorityAndWaitForState(ctx context.Context, certificateAuthorityID string, details UpdateCertificateAuthorityDetails, ifMatch string, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.UpdateAndWait(ctx, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.UpdateCertificateAuthority(ctx, certificateAuthorityID, details, ifMatch)
	}, c.client.GetCertificateAuthority, states, cfg)
}

func (c *CertificatesManagementClientCompositeOperations) DeleteCertificateAuthorityAndWaitForState(ctx context.Context, certificateAuthorityID string, states []string, cfg waiter.Config) (*ociapi.Response, error) {
	return c.waiter.DeleteAndWait(ctx, certificateAuthorityID, c.client.GetCertificateAuthority, func(ctx context.Context) (*ociapi.Response, error) {
		return c.client.DeleteCertificateAuthority(ctx, certificateAuthorityID)
	}, states, cfg)
}
