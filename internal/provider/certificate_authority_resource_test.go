package provider

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sync"
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
	"github.com/hashicorp/terraform-plugin-testing/terraform"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

const testCertificateAuthorityID = "ocid1.certificateauthority.oc1..test"

type fakeCertificateAuthority struct {
	mu          sync.Mutex
	created     bool
	deleted     bool
	description string
	updates     int
	// cleared records a PUT that sent description as an explicit null.
	cleared bool
}

func (f *fakeCertificateAuthority) document(state string) string {
	return fmt.Sprintf(`
		{
			"id": "%s",
			"name": "root-ca",
			"description": "%s",
			"compartmentId": "%s",
			"kmsKeyId": "ocid1.key.oc1..test",
			"configType": "ROOT_CA_GENERATED_INTERNALLY",
			"signingAlgorithm": "SHA256_WITH_RSA",
			"subject": {"commonName": "example.com"},
			"currentVersion": {"versionNumber": 1, "stages": ["CURRENT", "LATEST"]},
			"lifecycleState": "%s",
			"timeCreated": "2024-05-01T12:00:00Z"
		}
	`, testCertificateAuthorityID, f.description, testCompartmentID, state)
}

func (f *fakeCertificateAuthority) handlers(t *testing.T) map[string]func(w http.ResponseWriter, req *http.Request) {
	return map[string]func(w http.ResponseWriter, req *http.Request){
		"/20210224/certificateAuthorities": func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			b, _ := io.ReadAll(req.Body)
			body := string(b)
			assert.Equal(t, "ROOT_CA_GENERATED_INTERNALLY", gjson.Get(body, "certificateAuthorityConfig.configType").String())
			assert.Equal(t, "SHA256_WITH_RSA", gjson.Get(body, "certificateAuthorityConfig.signingAlgorithm").String())
			assert.Equal(t, "example.com", gjson.Get(body, "certificateAuthorityConfig.subject.commonName").String())

			f.created = true
			f.description = gjson.Get(body, "description").String()
			writeJSON(w, http.StatusOK, f.document("CREATING"))
		},
		"/20210224/certificateAuthorities/" + testCertificateAuthorityID: func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if !f.created || f.deleted {
				writeJSON(w, http.StatusNotFound, `{"code":"NotAuthorizedOrNotFound","message":"certificate authority not found"}`)
				return
			}
			switch req.Method {
			case http.MethodGet:
				w.Header().Set("etag", fmt.Sprintf("etag-%d", f.updates))
				writeJSON(w, http.StatusOK, f.document("ACTIVE"))
			case http.MethodPut:
				b, _ := io.ReadAll(req.Body)
				f.updates++
				description := gjson.GetBytes(b, "description")
				if description.Exists() && description.Type == gjson.Null {
					f.cleared = true
				}
				f.description = description.String()
				writeJSON(w, http.StatusOK, f.document("UPDATING"))
			case http.MethodDelete:
				f.deleted = true
				w.WriteHeader(http.StatusNoContent)
			}
		},
	}
}

func certificateAuthorityConfig(description string) string {
	descriptionLine := ""
	if description != "" {
		descriptionLine = fmt.Sprintf("description = %q", description)
	}
	return fmt.Sprintf(`
		resource "oci_certificate_authority" "root" {
		  compartment_id      = "%s"
		  name                = "root-ca"
		  %s
		  kms_key_id          = "ocid1.key.oc1..test"
		  config_type         = "ROOT_CA_GENERATED_INTERNALLY"
		  subject_common_name = "example.com"
		}
	`, testCompartmentID, descriptionLine)
}

func Test_CertificateAuthorityResource(t *testing.T) {
	t.Parallel()

	fake := new(fakeCertificateAuthority)
	server := defaultHttpTestServer(fake.handlers(t))
	defer server.Close()

	resource.Test(t, resource.TestCase{
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: providerConfig(server.URL) + certificateAuthorityConfig("first"),
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "id", testCertificateAuthorityID),
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "state", "ACTIVE"),
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "description", "first"),
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "signing_algorithm", "SHA256_WITH_RSA"),
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "time_created", "2024-05-01T12:00:00Z"),
					resource.TestCheckNoResourceAttr("oci_certificate_authority.root", "issuer_certificate_authority_id"),
				),
			},
			{
				Config: providerConfig(server.URL) + certificateAuthorityConfig("second"),
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "id", testCertificateAuthorityID),
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "description", "second"),
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "state", "ACTIVE"),
				),
			},
			{
				Config: providerConfig(server.URL) + certificateAuthorityConfig(""),
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckNoResourceAttr("oci_certificate_authority.root", "description"),
					resource.TestCheckResourceAttr("oci_certificate_authority.root", "state", "ACTIVE"),
					func(*terraform.State) error {
						fake.mu.Lock()
						defer fake.mu.Unlock()
						if !fake.cleared {
							return fmt.Errorf("description was not sent as null")
						}
						return nil
					},
				),
			},
			{
				ResourceName:      "oci_certificate_authority.root",
				ImportState:       true,
				ImportStateVerify: true,
			},
		},
	})
}

func Test_CertificateAuthorityResourceSubordinateNeedsIssuer(t *testing.T) {
	t.Parallel()

	server := defaultHttpTestServer(nil)
	defer server.Close()

	resource.Test(t, resource.TestCase{
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: providerConfig(server.URL) + fmt.Sprintf(`
					resource "oci_certificate_authority" "sub" {
					  compartment_id      = "%s"
					  name                = "sub-ca"
					  kms_key_id          = "ocid1.key.oc1..test"
					  config_type         = "SUBORDINATE_CA_ISSUED_BY_INTERNAL_CA"
					  subject_common_name = "sub.example.com"
					}
				`, testCompartmentID),
				ExpectError: regexp.MustCompile("needs issuer_certificate_authority_id"),
			},
		},
	})
}
