package cmd

import (
	"rpltopo/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

// newRootCmd builds the command tree. Flag state lives in the returned commands only.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:          "rpltopo",
		Long:         "Infers an RPL routing hierarchy (DODAG) from the control traffic found in packet captures.",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Logging level: debug|info|warn|error.")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", logging.FormatConsole, "Logging format: console|json.")
	rootCmd.AddCommand(newAnalyzeCmd(opts), newVersionCmd())
	return rootCmd
}

func (o *rootOptions) newLogger() (*zap.Logger, error) {
	return logging.New(o.logLevel, o.logFormat)
}

func Execute() error {
	return newRootCmd().Execute()
}
