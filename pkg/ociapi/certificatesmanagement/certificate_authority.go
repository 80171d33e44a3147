package certificatesmanagement

import (
	"time"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

// CertificateAuthority is a private CA.
type CertificateAuthority struct {
	*model.Instance
}

// CertificateAuthorityFrom returns the certificate authority carried by resp.
func CertificateAuthorityFrom(resp *ociapi.Response) (CertificateAuthority, bool) {
	if resp == nil || resp.Data == nil || !resp.Data.Descriptor().IsA("CertificateAuthority") {
		return CertificateAuthority{}, false
	}
	return CertificateAuthority{resp.Data}, true
}

func (c CertificateAuthority) ID() string            { return c.String("id") }
func (c CertificateAuthority) Name() string          { return c.String("name") }
func (c CertificateAuthority) Description() string   { return c.String("description") }
func (c CertificateAuthority) CompartmentID() string { return c.String("compartment_id") }
func (c CertificateAuthority) IssuerCertificateAuthorityID() string {
	return c.String("issuer_certificate_authority_id")
}
func (c CertificateAuthority) KmsKeyID() string                { return c.String("kms_key_id") }
func (c CertificateAuthority) LifecycleState() string          { return c.String("lifecycle_state") }
func (c CertificateAuthority) LifecycleDetails() string        { return c.String("lifecycle_details") }
func (c CertificateAuthority) ConfigType() string              { return c.String("config_type") }
func (c CertificateAuthority) SigningAlgorithm() string        { return c.String("signing_algorithm") }
func (c CertificateAuthority) TimeCreated() time.Time          { return c.Time("time_created") }
func (c CertificateAuthority) FreeformTags() map[string]string { return c.StringMap("freeform_tags") }

// CommonName returns the subject common name, if the subject is known.
func (c CertificateAuthority) CommonName() string {
	if subject := c.Model("subject"); subject != nil {
		return subject.String("common_name")
	}
	return ""
}

// CurrentVersionNumber returns the version number of the current version.
func (c CertificateAuthority) CurrentVersionNumber() int64 {
	if version := c.Model("current_version"); version != nil {
		return version.Int("version_number")
	}
	return 0
}

// CreateCertificateAuthorityDetails is the body of CreateCertificateAuthority.
type CreateCertificateAuthorityDetails struct {
	*model.Instance
}

// NewCreateCertificateAuthorityDetails builds the create body from attributes
// keyed by snake_case name or wire key. certificate_authority_config may be
// given as an attribute map, its config_type selects the variant.
func NewCreateCertificateAuthorityDetails(attrs map[string]any) (CreateCertificateAuthorityDetails, error) {
	inst, err := defaultCodec.Build("CreateCertificateAuthorityDetails", attrs)
	if err != nil {
		return CreateCertificateAuthorityDetails{}, err
	}
	return CreateCertificateAuthorityDetails{inst}, nil
}

// UpdateCertificateAuthorityDetails is the body of UpdateCertificateAuthority.
type UpdateCertificateAuthorityDetails struct {
	*model.Instance
}

func NewUpdateCertificateAuthorityDetails(attrs map[string]any) (UpdateCertificateAuthorityDetails, error) {
	inst, err := defaultCodec.Build("UpdateCertificateAuthorityDetails", attrs)
	if err != nil {
		return UpdateCertificateAuthorityDetails{}, err
	}
	return UpdateCertificateAuthorityDetails{inst}, nil
}
