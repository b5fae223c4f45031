package export

import (
	"strconv"

	"rpltopo/pkg/models"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters describing one analysis run.
type Metrics struct {
	PacketsTotal    prometheus.Counter
	RPLPacketsTotal prometheus.Counter
	CaptureErrors   prometheus.Counter
	FilesTotal      prometheus.Counter
	Nodes           *prometheus.GaugeVec
	Edges           prometheus.Gauge
	Endpoints       prometheus.Gauge
	Success         prometheus.Gauge

	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	m := &Metrics{
		PacketsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpltopo_packets_total",
			Help: "Packets read from all capture files.",
		}),
		RPLPacketsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpltopo_rpl_packets_total",
			Help: "Packets carrying an RPL control message.",
		}),
		CaptureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpltopo_capture_errors_total",
			Help: "Capture files abandoned because of an error.",
		}),
		FilesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpltopo_capture_files_total",
			Help: "Capture files visited.",
		}),
		Nodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rpltopo_nodes",
			Help: "Nodes in the inferred topology by rank.",
		}, []string{"rank"}),
		Edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpltopo_edges",
			Help: "Edges in the inferred topology.",
		}),
		Endpoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpltopo_endpoints",
			Help: "Distinct addresses seen in RPL packets.",
		}),
		Success: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpltopo_success",
			Help: "1 if at least one node was discovered.",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.PacketsTotal, m.RPLPacketsTotal, m.CaptureErrors,
		m.FilesTotal, m.Nodes, m.Edges, m.Endpoints, m.Success)
	return m
}

// Observe records res.
func (m *Metrics) Observe(res *models.Result) {
	m.PacketsTotal.Add(float64(res.TotalPackets))
	m.RPLPacketsTotal.Add(float64(res.RPLPackets))
	m.CaptureErrors.Add(float64(len(res.Diagnostics)))
	m.FilesTotal.Add(float64(res.FilesProcessed))
	for _, r := range models.Ranks {
		m.Nodes.WithLabelValues(rankLabel(r)).Set(0)
	}
	for _, n := range res.Nodes {
		m.Nodes.WithLabelValues(rankLabel(n.Rank)).Inc()
	}
	m.Edges.Set(float64(len(res.Edges)))
	m.Endpoints.Set(float64(res.Endpoints))
	if res.Success {
		m.Success.Set(1)
	} else {
		m.Success.Set(0)
	}
}

// WriteTextfile writes the metrics in the Prometheus text format, for the node exporter
// textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, m.registry), "writing metrics to %q", path)
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func rankLabel(r models.Rank) string {
	return strconv.Itoa(int(r))
}
