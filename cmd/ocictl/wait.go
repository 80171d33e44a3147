package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/certificatesmanagement"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/config"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/devops"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/resourcemanager"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
)

const waitLongDesc = `
OVERVIEW
The wait command polls a resource until its lifecycle state is one of the
given states, comparing case-insensitively. The poll interval doubles from
one second up to --max-interval-seconds, the command gives up after
--max-wait-seconds. Endpoint, region and token come from the OCI
configuration file and the OCI_* environment variables.
`

// waitKinds maps the resource kind argument to its service.
var waitKinds = map[string]string{
	"certificate-authority": certificatesmanagement.ServiceName,
	"deploy-stage":          devops.ServiceName,
	"stack":                 resourcemanager.ServiceName,
}

// waitOptions is the set of options of the wait command.
type waitOptions struct {
	Kind string
	ID   string

	States             []string
	MaxWaitSeconds     int
	MaxIntervalSeconds int
	SucceedOnNotFound  bool

	ConfigFile  string
	Profile     string
	MetricsFile string
	Output      string
}

type waitResult struct {
	Kind           string         `json:"kind"`
	ID             string         `json:"id"`
	Found          bool           `json:"found"`
	LifecycleState string         `json:"lifecycleState,omitempty"`
	OpcRequestID   string         `json:"opcRequestId,omitempty"`
	Document       map[string]any `json:"document,omitempty"`
}

func kindNames() string {
	names := make([]string, 0, len(waitKinds))
	for name := range waitKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func newWaitCommand() *cobra.Command {
	opts := &waitOptions{}
	cmd := &cobra.Command{
		Use:   "wait " + kindNames() + " ID --state STATE...",
		Short: "Waits for a resource to reach a lifecycle state",
		Long:  waitLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Complete(args)
			if err := opts.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return opts.Run(ctx, cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&opts.States, "state", nil, "Lifecycle states to wait for, repeatable")
	flags.IntVar(&opts.MaxWaitSeconds, "max-wait-seconds", 0, "Give up after this many seconds, the configuration or 1200 when 0")
	flags.IntVar(&opts.MaxIntervalSeconds, "max-interval-seconds", 0, "Longest pause between polls, the configuration or 30 when 0")
	flags.BoolVar(&opts.SucceedOnNotFound, "succeed-on-not-found", false, "Treat a resource that no longer exists as done")
	flags.StringVar(&opts.ConfigFile, "config-file", "", "OCI configuration file, ~/.oci/config when empty")
	flags.StringVar(&opts.Profile, "profile", "", "Profile of the configuration file, DEFAULT when empty")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "Write the waiter metrics in the Prometheus text format to this file")
	flags.StringVarP(&opts.Output, "output", "o", "json", "Output format (json, yaml)")
	return cmd
}

// Complete finishes parsing arguments for the command
func (o *waitOptions) Complete(args []string) {
	o.Kind, o.ID = args[0], args[1]
}

// Validate ensures that option values make sense
func (o *waitOptions) Validate() error {
	if _, ok := waitKinds[o.Kind]; !ok {
		return errors.Errorf("unknown resource kind %q, expected %s", o.Kind, kindNames())
	}
	if o.ID == "" {
		return errors.New("resource ID must not be empty")
	}
	if len(o.States) == 0 {
		return errors.New("at least one --state is required")
	}
	if o.MaxWaitSeconds < 0 || o.MaxIntervalSeconds < 0 {
		return errors.New("wait limits must not be negative")
	}
	return validateOutput(o.Output)
}

// Run executes the command
func (o *waitOptions) Run(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load(o.ConfigFile, o.Profile)
	if err != nil {
		return err
	}
	fetch, err := o.fetcher(cfg)
	if err != nil {
		return err
	}

	waitCfg := cfg.WaiterConfig()
	if o.MaxWaitSeconds > 0 {
		waitCfg.MaxWaitSeconds = o.MaxWaitSeconds
	}
	if o.MaxIntervalSeconds > 0 {
		waitCfg.MaxIntervalSeconds = o.MaxIntervalSeconds
	}
	waitCfg.SucceedOnNotFound = o.SucceedOnNotFound

	registry := prometheus.NewRegistry()
	w := waiter.New(waiter.WithMetrics(waiter.NewMetrics(registry)))

	logger := log.WithFields(log.Fields{"kind": o.Kind, "id": o.ID, "states": o.States})
	logger.Info("waiting for resource")

	resp, err := w.WaitUntil(ctx, func(ctx context.Context) (*ociapi.Response, error) {
		return fetch(ctx, o.ID)
	}, waiter.LifecycleStateIn(o.States...), waitCfg)

	if o.MetricsFile != "" {
		if writeErr := prometheus.WriteToTextfile(o.MetricsFile, registry); writeErr != nil {
			logger.WithError(writeErr).Warn("failed to write waiter metrics")
		}
	}
	if err != nil {
		return err
	}

	result := waitResult{Kind: o.Kind, ID: o.ID}
	if resp != nil {
		result.Found = true
		result.LifecycleState, _ = resp.LifecycleState()
		result.OpcRequestID = resp.OpcRequestID
		result.Document = model.Encode(resp.Data)
	}
	return printDocument(out, o.Output, result)
}

func (o *waitOptions) fetcher(cfg *config.Config) (waiter.Fetch, error) {
	hc, err := cfg.NewClient(waitKinds[o.Kind], ociapi.WithLogger(log.StandardLogger()))
	if err != nil {
		return nil, err
	}

	switch o.Kind {
	case "certificate-authority":
		return certificatesmanagement.NewCertificatesManagementClient(hc).GetCertificateAuthority, nil
	case "deploy-stage":
		return devops.NewDevopsClient(hc).GetDeployStage, nil
	case "stack":
		return resourcemanager.NewResourceManagerClient(hc).GetStack, nil
	}
	return nil, errors.Errorf("unknown resource kind %q", o.Kind)
}
