package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultLogLevel = "info"

func main() {
	cmd := newRootCommand()

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error occurred: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	LogLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "ocictl SUB-COMMAND",
		Short:         "Utilities for the OCI client models",
		Long:          "Decodes and encodes service models, waits for resources to reach a lifecycle state and shows the instance certificate",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.LogLevel)
			if err != nil {
				return errors.Wrap(err, "cannot parse log level")
			}
			log.SetLevel(level)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Usage()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", defaultLogLevel, "Log level (debug,info,warn,error,fatal)")
	cmd.AddCommand(newDecodeCommand())
	cmd.AddCommand(newEncodeCommand())
	cmd.AddCommand(newWaitCommand())
	cmd.AddCommand(newCertificateCommand())

	return cmd
}
