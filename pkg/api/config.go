package api

// Config is the analysis configuration as written by the user in a YAML file.
type Config struct {
	// The directory holding the capture files.
	CaptureDir string `yaml:"capture_dir"`
	// Capture file extensions to consider (e.g ".pcap"), matched case-insensitively.
	Extensions []string `yaml:"extensions,omitempty"`
	// The node identifier assumed to be the DODAG root by the rank heuristic.
	RootID string `yaml:"root_id,omitempty"`
	// A pair must be observed more than this many times to produce an edge.
	EdgeThreshold *int `yaml:"edge_threshold,omitempty"`
	// When set, a malformed address only drops its packet instead of the rest of the file.
	SkipMalformed bool `yaml:"skip_malformed,omitempty"`
	// The reports to write once the analysis is done.
	Outputs []Output `yaml:"outputs,omitempty"`
	// Path of a Prometheus textfile to write the run metrics to.
	MetricsFile string `yaml:"metrics_file,omitempty"`
}
