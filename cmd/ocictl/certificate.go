package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/auth"
)

const certificateLongDesc = `
OVERVIEW
The certificate command downloads the certificate and private key a compute
instance presents to the identity service and prints what the certificate
cache holds. Without flags the instance metadata service is used.
`

// certificateOptions is the set of options of the certificate command.
type certificateOptions struct {
	CertURL string
	KeyURL  string
	Output  string
}

type certificateSummary struct {
	Subject   string    `json:"subject"`
	Issuer    string    `json:"issuer"`
	NotBefore time.Time `json:"notBefore"`
	NotAfter  time.Time `json:"notAfter"`
	KeyType   string    `json:"keyType"`
	FetchedAt time.Time `json:"fetchedAt"`
}

func newCertificateCommand() *cobra.Command {
	opts := &certificateOptions{}
	cmd := &cobra.Command{
		Use:   "certificate",
		Short: "Shows the instance identity certificate",
		Long:  certificateLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return opts.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.CertURL, "cert-url", "", "URL of the PEM certificate, the instance metadata service when empty")
	flags.StringVar(&opts.KeyURL, "key-url", "", "URL of the PEM private key, required with --cert-url")
	flags.StringVarP(&opts.Output, "output", "o", "json", "Output format (json, yaml)")
	return cmd
}

// Validate ensures that option values make sense
func (o *certificateOptions) Validate() error {
	if (o.CertURL == "") != (o.KeyURL == "") {
		return errors.New("--cert-url and --key-url must be set together")
	}
	return validateOutput(o.Output)
}

// Run executes the command
func (o *certificateOptions) Run(ctx context.Context, out io.Writer) error {
	var (
		retriever *auth.CertificateRetriever
		err       error
	)
	if o.CertURL != "" {
		retriever, err = auth.NewURLBasedCertificateRetriever(o.CertURL, o.KeyURL, auth.WithLogger(log.StandardLogger()))
	} else {
		retriever, err = auth.NewInstanceMetadataCertificateRetriever(auth.WithLogger(log.StandardLogger()))
	}
	if err != nil {
		return err
	}

	snapshot, err := retriever.Current(ctx)
	if err != nil {
		return err
	}

	keyType := "unknown"
	switch snapshot.PrivateKey.(type) {
	case *rsa.PrivateKey:
		keyType = "RSA"
	case *ecdsa.PrivateKey:
		keyType = "ECDSA"
	}

	return printDocument(out, o.Output, certificateSummary{
		Subject:   snapshot.Certificate.Subject.String(),
		Issuer:    snapshot.Certificate.Issuer.String(),
		NotBefore: snapshot.Certificate.NotBefore.UTC(),
		NotAfter:  snapshot.Certificate.NotAfter.UTC(),
		KeyType:   keyType,
		FetchedAt: snapshot.FetchedAt.UTC(),
	})
}
