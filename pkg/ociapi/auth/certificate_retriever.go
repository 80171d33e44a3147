// Package auth caches the certificate and private key a compute instance
// presents to the identity service.
package auth

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
)

const (
	// DefaultMetadataEndpoint is the instance metadata service.
	DefaultMetadataEndpoint = "http://169.254.169.254/opc/v2"

	// the metadata service accepts this fixed bearer token.
	metadataToken = "Oracle"
)

var ErrNoCertificate = errors.New("no certificate material")

// CertificateSnapshot is one fetched certificate and key pair. Snapshots are
// never modified after they are published.
type CertificateSnapshot struct {
	CertificatePEM []byte
	Certificate    *x509.Certificate
	PrivateKeyPEM  []byte
	PrivateKey     crypto.Signer
	FetchedAt      time.Time
}

// CertificateSource returns PEM encoded certificate and private key material.
type CertificateSource interface {
	FetchCertificate(ctx context.Context) (certPEM, keyPEM []byte, err error)
}

// CertificateRetrieverFunc adapts a function to CertificateSource.
type CertificateRetrieverFunc func(ctx context.Context) (certPEM, keyPEM []byte, err error)

func (f CertificateRetrieverFunc) FetchCertificate(ctx context.Context) ([]byte, []byte, error) {
	return f(ctx)
}

type RetrieverOption func(*CertificateRetriever)

func WithClock(clock clockwork.Clock) RetrieverOption {
	return func(r *CertificateRetriever) {
		r.clock = clock
	}
}

func WithLogger(logger log.FieldLogger) RetrieverOption {
	return func(r *CertificateRetriever) {
		r.logger = logger
	}
}

// CertificateRetriever holds the last fetched snapshot. The lock is held for
// the whole fetch and publish of Refresh, and only for the pointer copy in
// Snapshot.
type CertificateRetriever struct {
	source CertificateSource
	clock  clockwork.Clock
	logger log.FieldLogger

	mu      sync.Mutex
	current *CertificateSnapshot
}

func NewCertificateRetriever(source CertificateSource, opts ...RetrieverOption) *CertificateRetriever {
	r := &CertificateRetriever{
		source: source,
		clock:  clockwork.NewRealClock(),
		logger: log.StandardLogger(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Refresh fetches new material and publishes it. On failure the previous
// snapshot stays in place.
func (r *CertificateRetriever) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshLocked(ctx)
}

func (r *CertificateRetriever) refreshLocked(ctx context.Context) error {
	certPEM, keyPEM, err := r.source.FetchCertificate(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch certificate")
	}
	snapshot, err := parseSnapshot(certPEM, keyPEM)
	if err != nil {
		return err
	}
	snapshot.FetchedAt = r.clock.Now()
	r.current = snapshot

	r.logger.WithFields(log.Fields{
		"subject":  snapshot.Certificate.Subject.String(),
		"notAfter": snapshot.Certificate.NotAfter,
	}).Debug("refreshed certificate")
	return nil
}

// Snapshot returns the last published snapshot, or nil before the first
// successful Refresh.
func (r *CertificateRetriever) Snapshot() *CertificateSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Current returns the published snapshot, refreshing first if there is none.
func (r *CertificateRetriever) Current(ctx context.Context) (*CertificateSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		if err := r.refreshLocked(ctx); err != nil {
			return nil, err
		}
	}
	return r.current, nil
}

func parseSnapshot(certPEM, keyPEM []byte) (*CertificateSnapshot, error) {
	certBlock, _ := pem.Decode(certPEM)
	if certBlock == nil {
		return nil, errors.Wrap(ErrNoCertificate, "certificate is not PEM encoded")
	}
	cert, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid certificate")
	}

	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		return nil, errors.Wrap(ErrNoCertificate, "private key is not PEM encoded")
	}
	key, err := parsePrivateKey(keyBlock)
	if err != nil {
		return nil, err
	}

	return &CertificateSnapshot{
		CertificatePEM: append([]byte(nil), certPEM...),
		Certificate:    cert,
		PrivateKeyPEM:  append([]byte(nil), keyPEM...),
		PrivateKey:     key,
	}, nil
}

func parsePrivateKey(block *pem.Block) (crypto.Signer, error) {
	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "invalid PKCS#1 private key")
		}
		return key, nil
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "invalid EC private key")
		}
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid PKCS#8 private key")
	}
	switch key := parsed.(type) {
	case *rsa.PrivateKey:
		return key, nil
	case *ecdsa.PrivateKey:
		return key, nil
	}
	return nil, errors.Errorf("unsupported private key type %T", parsed)
}

// urlSource downloads certificate and key from two URLs.
type urlSource struct {
	client  *ociapi.HttpClient
	certURL string
	keyURL  string
}

// NewURLBasedCertificateRetriever fetches the certificate and key from
// certURL and keyURL. Requests carry the bearer token the metadata service
// expects.
func NewURLBasedCertificateRetriever(certURL, keyURL string, opts ...RetrieverOption) (*CertificateRetriever, error) {
	client, err := ociapi.NewCustom(DefaultMetadataEndpoint, metadataToken, ociapi.WithRetryableHttpClient(2))
	if err != nil {
		return nil, err
	}
	return NewCertificateRetriever(&urlSource{client: client, certURL: certURL, keyURL: keyURL}, opts...), nil
}

// NewInstanceMetadataCertificateRetriever reads the instance identity
// certificate from the metadata service.
func NewInstanceMetadataCertificateRetriever(opts ...RetrieverOption) (*CertificateRetriever, error) {
	return NewURLBasedCertificateRetriever(
		DefaultMetadataEndpoint+"/identity/cert.pem",
		DefaultMetadataEndpoint+"/identity/key.pem",
		opts...,
	)
}

func (s *urlSource) FetchCertificate(ctx context.Context) ([]byte, []byte, error) {
	cert, err := s.get(ctx, s.certURL)
	if err != nil {
		return nil, nil, err
	}
	key, err := s.get(ctx, s.keyURL)
	if err != nil {
		return nil, nil, err
	}
	return cert, key, nil
}

func (s *urlSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	body, err := ociapi.DoRequestWithApiToken(s.client, req, func(resp *http.Response) (*[]byte, error) {
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		return &b, err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download %s", url)
	}
	return *body, nil
}
