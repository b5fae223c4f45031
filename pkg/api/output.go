package api

type OutputFormat string

var (
	Text OutputFormat = "text"
	JSON OutputFormat = "json"
	DOT  OutputFormat = "dot"
)

type Output struct {
	Format OutputFormat `yaml:"format"`
	Path   string       `yaml:"path"`
}
