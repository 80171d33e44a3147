package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMaterial(t *testing.T, cn string) (certPEM, keyPEM []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return certPEM, keyPEM
}

func TestRefreshAndSnapshot(t *testing.T) {
	certPEM, keyPEM := testMaterial(t, "instance-a")
	fc := clockwork.NewFakeClock()
	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	r := NewCertificateRetriever(CertificateRetrieverFunc(func(ctx context.Context) ([]byte, []byte, error) {
		return certPEM, keyPEM, nil
	}), WithClock(fc), WithLogger(logger))

	assert.Nil(t, r.Snapshot())
	require.NoError(t, r.Refresh(context.Background()))

	s := r.Snapshot()
	require.NotNil(t, s)
	assert.Equal(t, "instance-a", s.Certificate.Subject.CommonName)
	assert.Equal(t, fc.Now(), s.FetchedAt)
	assert.IsType(t, &rsa.PrivateKey{}, s.PrivateKey)
	assert.Equal(t, certPEM, s.CertificatePEM)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "refreshed certificate", hook.LastEntry().Message)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	certPEM, keyPEM := testMaterial(t, "instance-a")
	fail := false
	r := NewCertificateRetriever(CertificateRetrieverFunc(func(ctx context.Context) ([]byte, []byte, error) {
		if fail {
			return nil, nil, errors.New("metadata service unavailable")
		}
		return certPEM, keyPEM, nil
	}))

	require.NoError(t, r.Refresh(context.Background()))
	before := r.Snapshot()

	fail = true
	assert.Error(t, r.Refresh(context.Background()))
	assert.Same(t, before, r.Snapshot())
}

func TestCurrentRefreshesOnce(t *testing.T) {
	certPEM, keyPEM := testMaterial(t, "instance-a")
	var fetches atomic.Int32
	r := NewCertificateRetriever(CertificateRetrieverFunc(func(ctx context.Context) ([]byte, []byte, error) {
		fetches.Add(1)
		return certPEM, keyPEM, nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := r.Current(context.Background())
			assert.NoError(t, err)
			assert.NotNil(t, s)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), fetches.Load())
}

func TestSnapshotsAreReplacedNotMutated(t *testing.T) {
	first, firstKey := testMaterial(t, "first")
	second, secondKey := testMaterial(t, "second")
	var n atomic.Int32
	r := NewCertificateRetriever(CertificateRetrieverFunc(func(ctx context.Context) ([]byte, []byte, error) {
		if n.Add(1) == 1 {
			return first, firstKey, nil
		}
		return second, secondKey, nil
	}))

	require.NoError(t, r.Refresh(context.Background()))
	old := r.Snapshot()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, r.Refresh(context.Background()))
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			s := r.Snapshot()
			cn := s.Certificate.Subject.CommonName
			assert.Contains(t, []string{"first", "second"}, cn)
		}
	}()
	wg.Wait()

	assert.Equal(t, "first", old.Certificate.Subject.CommonName)
	assert.Equal(t, "second", r.Snapshot().Certificate.Subject.CommonName)
}

func TestParsePrivateKeyFormats(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	pkcs8, err := x509.MarshalPKCS8PrivateKey(rsaKey)
	require.NoError(t, err)
	ecDER, err := x509.MarshalECPrivateKey(ecKey)
	require.NoError(t, err)
	ecPKCS8, err := x509.MarshalPKCS8PrivateKey(ecKey)
	require.NoError(t, err)

	tests := []struct {
		name    string
		block   *pem.Block
		wantErr bool
	}{
		{name: "pkcs1", block: &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rsaKey)}},
		{name: "pkcs8 rsa", block: &pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}},
		{name: "sec1 ec", block: &pem.Block{Type: "EC PRIVATE KEY", Bytes: ecDER}},
		{name: "pkcs8 ec", block: &pem.Block{Type: "PRIVATE KEY", Bytes: ecPKCS8}},
		{name: "garbage", block: &pem.Block{Type: "PRIVATE KEY", Bytes: []byte("nope")}, wantErr: true},
		{name: "garbage pkcs1", block: &pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte("nope")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := parsePrivateKey(tt.block)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, key)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, key.Public())
		})
	}
}

func TestParseSnapshotRejectsNonPEM(t *testing.T) {
	_, keyPEM := testMaterial(t, "a")
	_, err := parseSnapshot([]byte("not pem"), keyPEM)
	assert.ErrorIs(t, err, ErrNoCertificate)
}

func TestURLBasedCertificateRetriever(t *testing.T) {
	certPEM, keyPEM := testMaterial(t, "instance-url")
	handlers := map[string]func(w http.ResponseWriter, req *http.Request){
		"/identity/cert.pem": func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "Bearer Oracle", req.Header.Get("Authorization"))
			_, _ = w.Write(certPEM)
		},
		"/identity/key.pem": func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write(keyPEM)
		},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	defer server.Close()

	r, err := NewURLBasedCertificateRetriever(server.URL+"/identity/cert.pem", server.URL+"/identity/key.pem")
	require.NoError(t, err)
	s, err := r.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "instance-url", s.Certificate.Subject.CommonName)

	missing, err := NewURLBasedCertificateRetriever(server.URL+"/identity/cert.pem", server.URL+"/identity/missing.pem")
	require.NoError(t, err)
	assert.Error(t, missing.Refresh(context.Background()))
	assert.Nil(t, missing.Snapshot())
}
