// A General note:
// Types in this package represent intermediate, easy to handle, structs that should be passed
// throughout the codebase and are detached from the outward facing YAML configuration and from
// the packet decoding library. This should make it easier to change either side without having
// to change the entire codebase.
package models

// Config represents the resolved configuration of a single analysis run.
type Config struct {
	CaptureDir    string
	Extensions    []string
	RootID        NodeID
	EdgeThreshold int
	SkipMalformed bool
	Outputs       []Output
	MetricsFile   string
}

// An Output is a report destination: the exporter format and the file it is written to.
type Output struct {
	Format string
	Path   string
}
