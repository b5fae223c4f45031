package cmd

import (
	"fmt"
	"io"

	"rpltopo/pkg/analysis"
	"rpltopo/pkg/api"
	"rpltopo/pkg/export"
	"rpltopo/pkg/mappers"
	"rpltopo/pkg/models"
	"rpltopo/pkg/registry"
	"rpltopo/pkg/yaml"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type analyzeOptions struct {
	*rootOptions

	configFile    string
	extensions    []string
	rootID        string
	edgeThreshold int
	skipMalformed bool
	outputs       []string
	metricsFile   string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{rootOptions: root}
	analyzeCmd := &cobra.Command{
		Use:   "analyze [capture-dir]",
		Short: "Analyzes a directory of pcap/pcapng files and reports the inferred topology",
		Args:  cobra.MaximumNArgs(1),
		RunE:  opts.runAnalysis,
	}
	analyzeCmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file.")
	analyzeCmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "Capture file extensions (default .pcap,.pcapng).")
	analyzeCmd.Flags().StringVar(&opts.rootID, "root-id", mappers.DefaultRootID, "Node id assumed to be the DODAG root.")
	analyzeCmd.Flags().IntVar(&opts.edgeThreshold, "edge-threshold", mappers.DefaultEdgeThreshold,
		"A pair must be seen more than this many times to become an edge.")
	analyzeCmd.Flags().BoolVar(&opts.skipMalformed, "skip-malformed", false,
		"Drop only the packet with a malformed address instead of the rest of its file.")
	analyzeCmd.Flags().StringArrayVarP(&opts.outputs, "output", "o", nil,
		"Report to write as format=path, format being one of text|json|dot (default text=rpl_report.txt).")
	analyzeCmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile.")
	return analyzeCmd
}

// loadConfig layers the command line over the configuration file.
func (o *analyzeOptions) loadConfig(cmd *cobra.Command, args []string) (*models.Config, error) {
	config := &api.Config{}
	if o.configFile != "" {
		var err error
		if config, err = yaml.NewParser().Parse(o.configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		config.CaptureDir = args[0]
	}
	if flags.Changed("ext") {
		config.Extensions = o.extensions
	}
	if flags.Changed("root-id") || config.RootID == "" {
		config.RootID = o.rootID
	}
	if flags.Changed("edge-threshold") {
		config.EdgeThreshold = &o.edgeThreshold
	}
	if flags.Changed("skip-malformed") {
		config.SkipMalformed = o.skipMalformed
	}
	if flags.Changed("output") {
		config.Outputs = nil
		for _, value := range o.outputs {
			output, err := mappers.ParseOutput(value)
			if err != nil {
				return nil, err
			}
			config.Outputs = append(config.Outputs, output)
		}
	}
	if flags.Changed("metrics-file") {
		config.MetricsFile = o.metricsFile
	}
	return mappers.MapConfig(config)
}

func (o *analyzeOptions) runAnalysis(cmd *cobra.Command, args []string) error {
	config, err := o.loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := o.newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	targets, err := registry.NewExporterRegistry().Register(config.Outputs)
	if err != nil {
		return err
	}

	res, err := analysis.Analyze(config, analysis.WithLogger(logger))
	if err != nil {
		return err
	}

	if config.MetricsFile != "" {
		metrics := export.NewMetrics()
		metrics.Observe(res)
		if err := metrics.WriteTextfile(config.MetricsFile); err != nil {
			logger.Error("Failed to write metrics", zap.Error(err))
		}
	}

	out := cmd.OutOrStdout()
	if !res.Success {
		fmt.Fprintln(out, "No valid RPL packet found.")
		printDiagnostics(out, res)
		return nil
	}

	for _, target := range targets {
		if err := target.Write(res); err != nil {
			return err
		}
	}
	printSummary(out, res, targets)
	return nil
}

func printSummary(w io.Writer, res *models.Result, targets []registry.Target) {
	fmt.Fprintf(w, "Root node: %s\n", *res.Root)
	fmt.Fprintf(w, "%d nodes, %d edges from %d RPL packets (%d total) in %d files\n",
		len(res.Nodes), len(res.Edges), res.RPLPackets, res.TotalPackets, res.FilesProcessed)
	if res.Endpoints > len(res.Nodes) {
		fmt.Fprintf(w, "%d addresses share %d node ids\n", res.Endpoints, len(res.Nodes))
	}
	printDiagnostics(w, res)
	fmt.Fprintln(w, "Files written:")
	for _, target := range targets {
		fmt.Fprintf(w, "- %s (%s)\n", target.Path, target.Format)
	}
}

func printDiagnostics(w io.Writer, res *models.Result) {
	for _, d := range res.Diagnostics {
		fmt.Fprintf(w, "Error in %s\n", d.Error())
	}
}
