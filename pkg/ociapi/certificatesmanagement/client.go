package certificatesmanagement

import (
	"context"
	"net/http"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const (
	ServiceName = "certificatesmanagement"
	apiVersion  = "/20210224"
)

type ClientOption func(*CertificatesManagementClient)

// WithSink routes enum coercion diagnostics of decoded responses to sink.
func WithSink(sink model.Sink) ClientOption {
	return func(c *CertificatesManagementClient) {
		c.codec = model.NewCodec(Registry, model.WithSink(sink))
	}
}

type CertificatesManagementClient struct {
	http  *ociapi.HttpClient
	codec *model.Codec
}

func NewCertificatesManagementClient(hc *ociapi.HttpClient, opts ...ClientOption) *CertificatesManagementClient {
	c := &CertificatesManagementClient{http: hc, codec: defaultCodec}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *CertificatesManagementClient) Codec() *model.Codec {
	return c.codec
}

func (c *CertificatesManagementClient) CreateCertificateAuthority(ctx context.Context, details CreateCertificateAuthorityDetails) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:       http.MethodPost,
		Path:         apiVersion + "/certificateAuthorities",
		Body:         details.Instance,
		ResponseType: "CertificateAuthority",
	}, c.codec)
}

func (c *CertificatesManagementClient) GetCertificateAuthority(ctx context.Context, certificateAuthorityID string) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:       http.MethodGet,
		Path:         apiVersion + "/certificateAuthorities/{certificateAuthorityId}",
		PathParams:   map[string]string{"certificateAuthorityId": certificateAuthorityID},
		ResponseType: "CertificateAuthority",
	}, c.codec)
}

// UpdateCertificateAuthority updates the CA. A non empty ifMatch must equal
// the current etag of the resource.
func (c *CertificatesManagementClient) UpdateCertificateAuthority(ctx context.Context, certificateAuthorityID string, details UpdateCertificateAuthorityDetails, ifMatch string) (*ociapi.Response, error) {
	call := ociapi.Call{
		Method:       http.MethodPut,
		Path:         apiVersion + "/certificateAuthorities/{certificateAuthorityId}",
		PathParams:   map[string]string{"certificateAuthorityId": certificateAuthorityID},
		Body:         details.Instance,
		ResponseType: "CertificateAuthority",
	}
	if ifMatch != "" {
		call.Header = http.Header{ociapi.HeaderIfMatch: []string{ifMatch}}
	}
	return c.http.Invoke(ctx, call, c.codec)
}

func (c *CertificatesManagementClient) DeleteCertificateAuthority(ctx context.Context, certificateAuthorityID string) (*ociapi.Response, error) {
	return c.http.Invoke(ctx, ociapi.Call{
		Method:     http.MethodDelete,
		Path:       apiVersion + "/certificateAuthorities/{certificateAuthorityId}",
		PathParams: map[string]string{"certificateAuthorityId": certificateAuthorityID},
	}, c.codec)
}

// ListCertificateAuthorities lists the CAs of a compartment. An empty
// lifecycleState lists all of them.
func (c *CertificatesManagementClient) ListCertificateAuthorities(ctx context.Context, compartmentID, lifecycleState string) (*ociapi.Response, error) {
	query := map[string][]string{"compartmentId": {compartmentID}}
	if lifecycleState != "" {
		query["lifecycleState"] = []string{lifecycleState}
	}
	return c.http.Invoke(ctx, ociapi.Call{
		Method:   http.MethodGet,
		Path:     apiVersion + "/certificateAuthorities",
		Query:    query,
		ListType: "CertificateAuthoritySummary",
	}, c.codec)
}
