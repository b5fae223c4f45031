package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"rpltopo/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rpltopo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	path := writeFile(t, `
capture_dir: /var/captures
extensions: [".pcap", ".PCAPNG"]
root_id: "1a"
edge_threshold: 2
skip_malformed: true
outputs:
  - format: text
    path: report.txt
  - format: dot
    path: topology.dot
metrics_file: rpltopo.prom
`)

	config, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/captures", config.CaptureDir)
	assert.Equal(t, []string{".pcap", ".PCAPNG"}, config.Extensions)
	assert.Equal(t, "1a", config.RootID)
	require.NotNil(t, config.EdgeThreshold)
	assert.Equal(t, 2, *config.EdgeThreshold)
	assert.True(t, config.SkipMalformed)
	assert.Equal(t, []api.Output{
		{Format: api.Text, Path: "report.txt"},
		{Format: api.DOT, Path: "topology.dot"},
	}, config.Outputs)
	assert.Equal(t, "rpltopo.prom", config.MetricsFile)
}

func TestParseMinimal(t *testing.T) {
	config, err := NewParser().Parse(writeFile(t, "capture_dir: captures\n"))
	require.NoError(t, err)
	assert.Equal(t, "captures", config.CaptureDir)
	assert.Nil(t, config.EdgeThreshold)
	assert.Empty(t, config.Outputs)
}

func TestParseErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewParser().Parse(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("unknown key", func(t *testing.T) {
		_, err := NewParser().Parse(writeFile(t, "capture_dir: x\nthreshold: 3\n"))
		assert.Error(t, err)
	})
	t.Run("bad type", func(t *testing.T) {
		_, err := NewParser().Parse(writeFile(t, "edge_threshold: lots\n"))
		assert.Error(t, err)
	})
}
