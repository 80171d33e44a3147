package certificatesmanagement

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
)

const testCAID = "ocid1.certificateauthority.oc1..test"

// fakeService serves one certificate authority whose lifecycle state advances
// on every GET.
type fakeService struct {
	mu      sync.Mutex
	states  []string
	gets    int
	deleted bool
	bodies  []string
}

func (f *fakeService) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

func (f *fakeService) body(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[i]
}

func (f *fakeService) isDeleted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleted
}

func (f *fakeService) caJSON(state string) string {
	return `{"id":"` + testCAID + `","name":"root-ca","compartmentId":"ocid1.compartment","lifecycleState":"` + state +
		`","configType":"ROOT_CA_GENERATED_INTERNALLY","timeCreated":"2024-02-01T10:00:00Z",` +
		`"subject":{"commonName":"example.com"},"currentVersion":{"versionNumber":1,"stages":["CURRENT","LATEST"]}}`
}

func (f *fakeService) server(t *testing.T) *ociapi.HttpClient {
	t.Helper()
	handlers := map[string]func(w http.ResponseWriter, req *http.Request){
		"POST /20210224/certificateAuthorities": func(w http.ResponseWriter, req *http.Request) {
			body, _ := io.ReadAll(req.Body)
			f.bodies = append(f.bodies, string(body))
			_, _ = w.Write([]byte(f.caJSON(LifecycleStateCreating)))
		},
		"GET /20210224/certificateAuthorities/" + testCAID: func(w http.ResponseWriter, req *http.Request) {
			if f.deleted {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"code":"NotAuthorizedOrNotFound","message":"gone"}`))
				return
			}
			state := f.states[min(f.gets, len(f.states)-1)]
			f.gets++
			w.Header().Set(ociapi.HeaderETag, "etag-1")
			_, _ = w.Write([]byte(f.caJSON(state)))
		},
		"PUT /20210224/certificateAuthorities/" + testCAID: func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get(ociapi.HeaderIfMatch) != "etag-1" {
				w.WriteHeader(http.StatusPreconditionFailed)
				_, _ = w.Write([]byte(`{"code":"PreconditionFailed","message":"etag mismatch"}`))
				return
			}
			body, _ := io.ReadAll(req.Body)
			f.bodies = append(f.bodies, string(body))
			_, _ = w.Write([]byte(f.caJSON(LifecycleStateUpdating)))
		},
		"DELETE /20210224/certificateAuthorities/" + testCAID: func(w http.ResponseWriter, req *http.Request) {
			f.deleted = true
			w.WriteHeader(http.StatusNoContent)
		},
		"GET /20210224/certificateAuthorities": func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "ocid1.compartment", req.URL.Query().Get("compartmentId"))
			assert.Equal(t, "ACTIVE", req.URL.Query().Get("lifecycleState"))
			_, _ = w.Write([]byte(`{"items":[{"id":"a","lifecycleState":"ACTIVE"},{"id":"b","lifecycleState":"BRAND_NEW"}]}`))
		},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		handler, ok := handlers[req.Method+" "+req.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, req)
	}))
	t.Cleanup(server.Close)

	hc, err := ociapi.NewCustom(server.URL, "token")
	require.NoError(t, err)
	return hc
}

func newTestWaiter(t *testing.T) *waiter.Waiter {
	fc := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		for fc.BlockUntilContext(ctx, 1) == nil {
			fc.Advance(time.Minute)
		}
	}()
	logger, _ := logrustest.NewNullLogger()
	return waiter.New(waiter.WithClock(fc), waiter.WithLogger(logger))
}

func rootCADetails(t *testing.T) CreateCertificateAuthorityDetails {
	details, err := NewCreateCertificateAuthorityDetails(map[string]any{
		"name":          "root-ca",
		"compartmentId": "ocid1.compartment",
		"kms_key_id":    "ocid1.key",
		"certificate_authority_config": map[string]any{
			"configType": ConfigTypeRootCaGeneratedInternally,
			"subject":    map[string]any{"common_name": "example.com"},
		},
	})
	require.NoError(t, err)
	return details
}

func TestCreateCertificateAuthorityAndWaitForState(t *testing.T) {
	svc := &fakeService{states: []string{LifecycleStateCreating, LifecycleStateCreating, LifecycleStateActive}}
	client := NewCertificatesManagementClient(svc.server(t))
	ops := NewCertificatesManagementClientCompositeOperations(client, newTestWaiter(t))

	resp, err := ops.CreateCertificateAuthorityAndWaitForState(context.Background(), rootCADetails(t),
		[]string{"active"}, waiter.Config{})
	require.NoError(t, err)

	ca, ok := CertificateAuthorityFrom(resp)
	require.True(t, ok)
	assert.Equal(t, testCAID, ca.ID())
	assert.Equal(t, LifecycleStateActive, ca.LifecycleState())
	assert.Equal(t, "example.com", ca.CommonName())
	assert.Equal(t, int64(1), ca.CurrentVersionNumber())
	assert.True(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC).Equal(ca.TimeCreated()))
	assert.Equal(t, 3, svc.getCount())

	body := svc.body(0)
	assert.Equal(t, "ocid1.key", gjson.Get(body, "kmsKeyId").String())
	assert.Equal(t, ConfigTypeRootCaGeneratedInternally, gjson.Get(body, "certificateAuthorityConfig.configType").String())
	assert.Equal(t, "SHA256_WITH_RSA", gjson.Get(body, "certificateAuthorityConfig.signingAlgorithm").String(), "default applied")
	assert.Equal(t, "example.com", gjson.Get(body, "certificateAuthorityConfig.subject.commonName").String())
	assert.False(t, gjson.Get(body, "description").Exists(), "unset attributes are not sent")
}

func TestCreateCertificateAuthorityWithoutStates(t *testing.T) {
	svc := &fakeService{states: []string{LifecycleStateActive}}
	ops := NewCertificatesManagementClientCompositeOperations(NewCertificatesManagementClient(svc.server(t)), newTestWaiter(t))

	resp, err := ops.CreateCertificateAuthorityAndWaitForState(context.Background(), rootCADetails(t), nil, waiter.Config{})
	require.NoError(t, err)
	state, _ := resp.LifecycleState()
	assert.Equal(t, LifecycleStateCreating, state)
	assert.Zero(t, svc.getCount())
}

func TestUpdateCertificateAuthorityAndWaitForState(t *testing.T) {
	svc := &fakeService{states: []string{LifecycleStateUpdating, LifecycleStateActive}}
	ops := NewCertificatesManagementClientCompositeOperations(NewCertificatesManagementClient(svc.server(t)), newTestWaiter(t))

	details, err := NewUpdateCertificateAuthorityDetails(map[string]any{"description": "rotated"})
	require.NoError(t, err)

	resp, err := ops.UpdateCertificateAuthorityAndWaitForState(context.Background(), testCAID, details, "etag-1",
		[]string{LifecycleStateActive}, waiter.Config{})
	require.NoError(t, err)
	state, _ := resp.LifecycleState()
	assert.Equal(t, LifecycleStateActive, state)
	assert.JSONEq(t, `{"description":"rotated"}`, svc.body(0))

	_, err = ops.UpdateCertificateAuthorityAndWaitForState(context.Background(), testCAID, details, "stale",
		[]string{LifecycleStateActive}, waiter.Config{})
	var serviceErr *ociapi.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusPreconditionFailed, serviceErr.StatusCode)
	var compositeErr *waiter.CompositeOperationError
	assert.NotErrorAs(t, err, &compositeErr, "a rejected update is not a composite failure")
}

func TestDeleteCertificateAuthorityAndWaitForState(t *testing.T) {
	svc := &fakeService{states: []string{LifecycleStateActive}}
	ops := NewCertificatesManagementClientCompositeOperations(NewCertificatesManagementClient(svc.server(t)), newTestWaiter(t))

	resp, err := ops.DeleteCertificateAuthorityAndWaitForState(context.Background(), testCAID,
		[]string{LifecycleStateDeleted}, waiter.Config{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, svc.isDeleted())
	assert.Equal(t, 1, svc.getCount(), "only the read before the delete succeeds")
}

func TestListCertificateAuthorities(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	svc := &fakeService{states: []string{LifecycleStateActive}}
	client := NewCertificatesManagementClient(svc.server(t), WithSink(model.LogrusSink(logger)))

	resp, err := client.ListCertificateAuthorities(context.Background(), "ocid1.compartment", LifecycleStateActive)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "CertificateAuthoritySummary", resp.Items[0].TypeName())
	assert.Equal(t, model.UnknownEnumValue, resp.Items[1].String("lifecycle_state"))

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "BRAND_NEW", hook.LastEntry().Data["value"])
}

func TestNewCreateCertificateAuthorityDetails(t *testing.T) {
	t.Run("subordinate variant", func(t *testing.T) {
		details, err := NewCreateCertificateAuthorityDetails(map[string]any{
			"name": "sub-ca",
			"certificateAuthorityConfig": map[string]any{
				"config_type":                  ConfigTypeSubordinateCaIssuedByInternalCa,
				"issuerCertificateAuthorityId": "ocid1.parent",
				"signing_algorithm":            "SHA384_WITH_ECDSA",
			},
		})
		require.NoError(t, err)
		config := details.Model("certificate_authority_config")
		require.NotNil(t, config)
		assert.Equal(t, "SubordinateCaIssuedByInternalCaConfigDetails", config.TypeName())
		assert.Equal(t, "ocid1.parent", config.String("issuer_certificate_authority_id"))
		assert.Equal(t, "SHA384_WITH_ECDSA", config.String("signing_algorithm"))
	})

	t.Run("both spellings of one attribute", func(t *testing.T) {
		_, err := NewCreateCertificateAuthorityDetails(map[string]any{
			"certificate_authority_config": map[string]any{
				"config_type":                     ConfigTypeSubordinateCaIssuedByInternalCa,
				"issuerCertificateAuthorityId":    "a",
				"issuer_certificate_authority_id": "a",
			},
		})
		var ambiguous *model.AmbiguousAttributeError
		require.ErrorAs(t, err, &ambiguous)
		assert.ErrorIs(t, err, model.ErrInvalidArgument)
		assert.Equal(t, "issuer_certificate_authority_id", ambiguous.Attribute)
	})
}

func TestRegistryResolvesConfigVariants(t *testing.T) {
	name, err := defaultCodec.ResolveSubtype(map[string]any{"configType": ConfigTypeRootCaGeneratedInternally}, "CertificateAuthorityConfigDetails")
	require.NoError(t, err)
	assert.Equal(t, "RootCaGeneratedInternallyConfigDetails", name)

	name, err = defaultCodec.ResolveSubtype(map[string]any{"configType": "ROOT_CA_MANAGED_EXTERNALLY"}, "CertificateAuthorityConfigDetails")
	require.NoError(t, err)
	assert.Equal(t, "CertificateAuthorityConfigDetails", name)
}
