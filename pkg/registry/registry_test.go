package registry

import (
	"os"
	"path/filepath"
	"testing"

	"rpltopo/pkg/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	targets, err := NewExporterRegistry().Register([]models.Output{
		{Format: "text", Path: "a.txt"},
		{Format: "dot", Path: "a.dot"},
	})
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "a.txt", targets[0].Path)
	assert.Equal(t, "dot", targets[1].Format)
}

func TestRegisterUnknown(t *testing.T) {
	_, err := NewExporterRegistry().Register([]models.Output{{Format: "png", Path: "a.png"}})
	assert.True(t, errors.Is(err, ErrUnknownFormat), "got %v", err)
}

func TestTargetWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	targets, err := NewExporterRegistry().Register([]models.Output{{Format: "json", Path: path}})
	require.NoError(t, err)

	require.NoError(t, targets[0].Write(&models.Result{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"success": false`)
}
