package mappers

import (
	"strings"

	"rpltopo/pkg/api"
	"rpltopo/pkg/models"

	"github.com/pkg/errors"
)

const (
	DefaultRootID        = "1"
	DefaultEdgeThreshold = 1
	DefaultReportPath    = "rpl_report.txt"
)

var DefaultExtensions = []string{".pcap", ".pcapng"}

var (
	ErrNoCaptureDir  = errors.New("no capture directory given")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MapConfig resolves the user facing configuration into the one used by an analysis run,
// filling in defaults and rejecting values the run cannot work with. Output formats are
// left to the exporter registry.
func MapConfig(config *api.Config) (*models.Config, error) {
	res := &models.Config{
		CaptureDir:    config.CaptureDir,
		RootID:        models.NodeID(config.RootID),
		EdgeThreshold: DefaultEdgeThreshold,
		SkipMalformed: config.SkipMalformed,
		MetricsFile:   config.MetricsFile,
	}

	if res.CaptureDir == "" {
		return nil, ErrNoCaptureDir
	}
	if res.RootID == "" {
		res.RootID = DefaultRootID
	}
	if strings.Contains(string(res.RootID), ":") {
		return nil, errors.Wrapf(ErrInvalidConfig, "root id %q must be an address suffix", res.RootID)
	}

	if config.EdgeThreshold != nil {
		if *config.EdgeThreshold < 0 {
			return nil, errors.Wrapf(ErrInvalidConfig, "negative edge threshold %d", *config.EdgeThreshold)
		}
		res.EdgeThreshold = *config.EdgeThreshold
	}

	// Default to the original capture formats if no extension is specified.
	exts := config.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return nil, errors.Wrapf(ErrInvalidConfig, "extension %q must start with a dot", ext)
		}
		res.Extensions = append(res.Extensions, strings.ToLower(ext))
	}

	if len(config.Outputs) == 0 {
		res.Outputs = []models.Output{{Format: string(api.Text), Path: DefaultReportPath}}
	}
	for _, output := range config.Outputs {
		if output.Path == "" {
			return nil, errors.Wrapf(ErrInvalidConfig, "no path for %s output", output.Format)
		}
		res.Outputs = append(res.Outputs, models.Output{
			Format: string(output.Format),
			Path:   output.Path,
		})
	}
	return res, nil
}

// ParseOutput parses a "format=path" command line value.
func ParseOutput(value string) (api.Output, error) {
	format, path, ok := strings.Cut(value, "=")
	if !ok || format == "" || path == "" {
		return api.Output{}, errors.Wrapf(ErrInvalidConfig, "output %q is not format=path", value)
	}
	return api.Output{Format: api.OutputFormat(strings.ToLower(format)), Path: path}, nil
}
