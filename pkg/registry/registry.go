package registry

import (
	"os"
	"path/filepath"

	"rpltopo/pkg/api"
	"rpltopo/pkg/export"
	"rpltopo/pkg/models"

	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned by Register for an output no exporter can write.
var ErrUnknownFormat = errors.New("unknown output format")

// A Target is an output resolved to the exporter that writes it.
type Target struct {
	models.Output
	Exporter export.Exporter
}

// ExporterRegistry attempts to resolve the list of outputs requested by the user
// to the exporters able to write them.
type ExporterRegistry interface {
	Register(outputs []models.Output) ([]Target, error)
}

func NewExporterRegistry() ExporterRegistry {
	return &FormatRegistry{
		exporters: map[string]export.Exporter{
			string(api.Text): export.ExporterFunc(export.Text),
			string(api.JSON): export.ExporterFunc(export.JSON),
			string(api.DOT):  export.ExporterFunc(export.DOT),
		},
	}
}

// FormatRegistry looks exporters up by format name.
type FormatRegistry struct {
	exporters map[string]export.Exporter
}

func (r *FormatRegistry) Register(outputs []models.Output) ([]Target, error) {
	res := make([]Target, len(outputs))
	for i, output := range outputs {
		exporter, ok := r.exporters[output.Format]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownFormat, "%q", output.Format)
		}
		res[i] = Target{Output: output, Exporter: exporter}
	}
	return res, nil
}

// Write exports res to the target's file, creating missing parent directories.
func (t Target) Write(res *models.Result) error {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %q", t.Path)
	}
	f, err := os.Create(t.Path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", t.Path)
	}
	if err := t.Exporter.Export(f, res); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s output %q", t.Format, t.Path)
	}
	return errors.Wrapf(f.Close(), "closing %q", t.Path)
}
