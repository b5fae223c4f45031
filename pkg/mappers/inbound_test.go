package mappers

import (
	"testing"

	"rpltopo/pkg/api"
	"rpltopo/pkg/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestMapConfigDefaults(t *testing.T) {
	config, err := MapConfig(&api.Config{CaptureDir: "captures"})
	require.NoError(t, err)

	assert.Equal(t, &models.Config{
		CaptureDir:    "captures",
		Extensions:    []string{".pcap", ".pcapng"},
		RootID:        "1",
		EdgeThreshold: 1,
		Outputs:       []models.Output{{Format: "text", Path: "rpl_report.txt"}},
	}, config)
}

func TestMapConfigOverrides(t *testing.T) {
	config, err := MapConfig(&api.Config{
		CaptureDir:    "captures",
		Extensions:    []string{".PCAP"},
		RootID:        "1a",
		EdgeThreshold: intPtr(0),
		SkipMalformed: true,
		Outputs: []api.Output{
			{Format: api.JSON, Path: "out.json"},
			{Format: api.DOT, Path: "out.dot"},
		},
		MetricsFile: "run.prom",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{".pcap"}, config.Extensions)
	assert.Equal(t, models.NodeID("1a"), config.RootID)
	assert.Equal(t, 0, config.EdgeThreshold)
	assert.True(t, config.SkipMalformed)
	assert.Equal(t, []models.Output{
		{Format: "json", Path: "out.json"},
		{Format: "dot", Path: "out.dot"},
	}, config.Outputs)
	assert.Equal(t, "run.prom", config.MetricsFile)
}

func TestMapConfigErrors(t *testing.T) {
	tests := map[string]struct {
		config api.Config
		want   error
	}{
		"no dir": {
			config: api.Config{},
			want:   ErrNoCaptureDir,
		},
		"negative threshold": {
			config: api.Config{CaptureDir: "c", EdgeThreshold: intPtr(-1)},
			want:   ErrInvalidConfig,
		},
		"extension without dot": {
			config: api.Config{CaptureDir: "c", Extensions: []string{"pcap"}},
			want:   ErrInvalidConfig,
		},
		"address as root id": {
			config: api.Config{CaptureDir: "c", RootID: "fe80::1"},
			want:   ErrInvalidConfig,
		},
		"output without path": {
			config: api.Config{CaptureDir: "c", Outputs: []api.Output{{Format: api.Text}}},
			want:   ErrInvalidConfig,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := MapConfig(&tc.config)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestParseOutput(t *testing.T) {
	output, err := ParseOutput("DOT=graphs/topology.dot")
	require.NoError(t, err)
	assert.Equal(t, api.Output{Format: api.DOT, Path: "graphs/topology.dot"}, output)

	for _, bad := range []string{"report.txt", "=report.txt", "text="} {
		_, err := ParseOutput(bad)
		assert.Error(t, err, bad)
	}
}

func TestMapConfigKeepsFormat(t *testing.T) {
	config, err := MapConfig(&api.Config{CaptureDir: "c", Outputs: []api.Output{{Format: "png", Path: "x.png"}}})
	require.NoError(t, err)
	assert.Equal(t, []models.Output{{Format: "png", Path: "x.png"}}, config.Outputs)
}
