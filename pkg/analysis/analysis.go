// Package analysis runs the inference pipeline over a directory of capture files.
//
// Files are visited in ascending name order and packets in capture order; every RPL
// control packet feeds the traffic count and then the rank estimator. Once all files
// are consumed the topology is built and the root selected. A file that fails to decode
// is abandoned from the failing packet on and recorded as a diagnostic; the run goes on
// with the next file.
package analysis

import (
	"io"

	"rpltopo/pkg/capture"
	"rpltopo/pkg/extract"
	"rpltopo/pkg/models"
	"rpltopo/pkg/rank"
	"rpltopo/pkg/topology"
	"rpltopo/pkg/traffic"

	"github.com/gopacket/gopacket/layers"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrAlreadyRun is returned when Execute is called a second time on the same Run.
var ErrAlreadyRun = errors.New("analysis already run")

// An Option customizes a Run.
type Option func(*Run)

// WithOpener replaces the capture file opener.
func WithOpener(o capture.Opener) Option {
	return func(r *Run) { r.opener = o }
}

// WithLogger sets the logger. Runs log nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(r *Run) { r.log = l }
}

// Run owns the state of one analysis. It is single use and not safe for concurrent use.
type Run struct {
	config *models.Config
	opener capture.Opener
	log    *zap.Logger

	counts    *traffic.Count
	estimator *rank.Estimator
	extractor *extract.Extractor

	totalPackets int
	rplPackets   int
	files        int
	diagnostics  []models.FileError
	done         bool
}

// New prepares a run over config.CaptureDir. Nothing is read before Execute.
func New(config *models.Config, opts ...Option) *Run {
	r := &Run{
		config:    config,
		opener:    capture.NewFileOpener(),
		log:       zap.NewNop(),
		counts:    traffic.NewCount(),
		estimator: rank.NewEstimator(config.RootID),
	}
	for _, opt := range opts {
		opt(r)
	}
	// The aggregator must see a pair before the estimator does.
	r.extractor = extract.New(r.counts, r.estimator)
	return r
}

// Analyze is a shorthand for New(config, opts...).Execute().
func Analyze(config *models.Config, opts ...Option) (*models.Result, error) {
	return New(config, opts...).Execute()
}

// Execute processes every capture file and returns the result. Per-file failures end up
// in Result.Diagnostics; only a capture directory that cannot be listed is an error.
func (r *Run) Execute() (*models.Result, error) {
	if r.done {
		return nil, ErrAlreadyRun
	}
	r.done = true

	files, err := capture.List(r.config.CaptureDir, r.config.Extensions)
	if err != nil {
		return nil, err
	}
	r.log.Info("Starting analysis", zap.String("dir", r.config.CaptureDir), zap.Int("files", len(files)))

	for _, file := range files {
		r.log.Info("Processing capture", zap.String("file", file))
		if err := r.processFile(file); err != nil {
			r.log.Warn("Abandoning capture", zap.String("file", file), zap.Error(err))
			r.diagnostics = append(r.diagnostics, models.FileError{File: file, Err: err})
		}
		r.files++
	}
	return r.result(), nil
}

func (r *Run) processFile(file string) error {
	reader, err := r.opener.Open(file)
	if err != nil {
		return err
	}
	defer reader.Close()

	if lt, ok := reader.(interface{ LinkType() layers.LinkType }); ok && !capture.CarriesIPv6(lt.LinkType()) {
		r.log.Warn("Link type cannot carry IPv6, no RPL packet will be found",
			zap.String("file", file), zap.Stringer("link_type", lt.LinkType()))
	}

	for {
		pkt, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		r.totalPackets++

		pair, ok, err := r.extractor.Extract(pkt)
		if err != nil {
			// A malformed address is still a packet the RPL predicate accepted.
			r.rplPackets++
			if r.config.SkipMalformed {
				r.log.Warn("Skipping packet", zap.String("file", file), zap.Error(err))
				continue
			}
			return &capture.DecodeError{File: file, Err: err}
		}
		if !ok {
			continue
		}
		r.rplPackets++
		r.log.Debug("RPL packet", zap.String("src", string(pair.Src)), zap.String("dst", string(pair.Dst)))
	}
}

func (r *Run) result() *models.Result {
	topo := topology.Build(r.counts, r.estimator.Table(), r.config.EdgeThreshold)
	root := topology.Root(topo)
	res := &models.Result{
		TotalPackets:   r.totalPackets,
		RPLPackets:     r.rplPackets,
		Nodes:          topo.Nodes(),
		Edges:          topo.Edges(),
		Root:           root,
		Endpoints:      r.extractor.Endpoints(),
		Success:        topo.Len() > 0,
		FilesProcessed: r.files,
		Diagnostics:    r.diagnostics,
	}
	if root != nil {
		r.log.Info("Root identified", zap.String("root", string(*root)),
			zap.Int("nodes", topo.Len()), zap.Int("edges", len(res.Edges)),
			zap.Int("endpoints", res.Endpoints))
	} else {
		r.log.Info("No RPL node found")
	}
	return res
}
