package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"rpltopo/pkg/capture/capturetest"
	"rpltopo/pkg/registry"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestAnalyzeCommand(t *testing.T) {
	captures, outDir := t.TempDir(), t.TempDir()
	capturetest.WritePcap(t, filepath.Join(captures, "a.pcap"),
		capturetest.RPL(t, "fe80::1", "fe80::5"),
		capturetest.RPL(t, "fe80::1", "fe80::5"),
		capturetest.Echo(t, "fe80::5", "fe80::1"),
	)
	report := filepath.Join(outDir, "report.txt")
	graph := filepath.Join(outDir, "graphs", "topology.dot")
	metrics := filepath.Join(outDir, "rpltopo.prom")

	out := execute(t, "analyze", captures, "--log-level", "error",
		"-o", "text="+report, "-o", "dot="+graph, "--metrics-file", metrics)

	assert.Contains(t, out, "Root node: 5\n")
	assert.Contains(t, out, "2 nodes, 1 edges from 2 RPL packets (3 total) in 1 files")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Routing relations:\n5 -> 1\n")

	data, err = os.ReadFile(graph)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"5" -> "1";`)

	data, err = os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rpltopo_success 1")
}

func TestAnalyzeCommandWithConfigFile(t *testing.T) {
	captures, outDir := t.TempDir(), t.TempDir()
	capturetest.WritePcap(t, filepath.Join(captures, "a.pcap"), capturetest.Echo(t, "fe80::5", "fe80::1"))
	report := filepath.Join(outDir, "report.json")
	configPath := filepath.Join(outDir, "rpltopo.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("capture_dir: "+captures+"\n"), 0o644))

	out := execute(t, "analyze", "--config", configPath, "--log-level", "error",
		"-o", "json="+report, "--metrics-file", filepath.Join(outDir, "m.prom"))

	assert.Contains(t, out, "No valid RPL packet found.")
	_, err := os.Stat(report)
	assert.True(t, os.IsNotExist(err), "no report is written without nodes")
}

func TestAnalyzeCommandOutputsDoNotLeak(t *testing.T) {
	captures, outDir := t.TempDir(), t.TempDir()
	capturetest.WritePcap(t, filepath.Join(captures, "a.pcap"), capturetest.RPL(t, "fd00::2", "fd00::9"))
	first := filepath.Join(outDir, "first.json")
	second := filepath.Join(outDir, "second.dot")

	execute(t, "analyze", captures, "--log-level", "error", "-o", "json="+first)
	require.NoError(t, os.Remove(first))
	out := execute(t, "analyze", captures, "--log-level", "error", "-o", "dot="+second)

	assert.Contains(t, out, "Files written:\n- "+second+" (dot)\n")
	assert.NotContains(t, out, first)
	_, err := os.Stat(first)
	assert.True(t, os.IsNotExist(err), "outputs of an earlier run are not written again")
}

func TestAnalyzeCommandSharedNodeIDs(t *testing.T) {
	captures, outDir := t.TempDir(), t.TempDir()
	capturetest.WritePcap(t, filepath.Join(captures, "a.pcap"),
		capturetest.RPL(t, "fe80::1", "fe80::5"),
		capturetest.RPL(t, "fd00::5", "fe80::1"),
	)

	out := execute(t, "analyze", captures, "--log-level", "error", "-o", "text="+filepath.Join(outDir, "r.txt"))
	assert.Contains(t, out, "3 addresses share 2 node ids\n")
}

func TestAnalyzeCommandUnknownFormat(t *testing.T) {
	captures := t.TempDir()
	capturetest.WritePcap(t, filepath.Join(captures, "a.pcap"), capturetest.RPL(t, "fe80::1", "fe80::5"))

	rootCmd := newRootCmd()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"analyze", captures, "--log-level", "error", "-o", "png=" + filepath.Join(t.TempDir(), "a.png")})
	err := rootCmd.Execute()
	assert.True(t, errors.Is(err, registry.ErrUnknownFormat), "got %v", err)
}
