package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"glance/internal/config"
	"glance/internal/errors"
	"glance/internal/log"
	"glance/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "watch:DIR")
	assert.Contains(t, out, "--pipe")
	assert.Contains(t, out, "resolve")
	assert.Contains(t, out, "config")
}

func TestResolveCommand(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"a.txt": "one\ntwo\nthree\n"})
	cfgFile := filepath.Join(dir, "none.yaml")

	out, err := execute(t, "--config", cfgFile, "resolve", "--height", "2", filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "kind: text (guessed text/plain)")
	assert.Contains(t, out, "one\ntwo\n")
	assert.NotContains(t, out, "three")

	out, err = execute(t, "--config", cfgFile, "resolve", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "kind: directory")
	assert.Contains(t, out, "a.txt")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glance", "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.New(), loaded)

	_, err = execute(t, "--config", path, "config", "init")
	require.Error(t, err, "refuses to overwrite")
	_, err = execute(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "renderer: tui")
	assert.Contains(t, out, "idle_interval_ms: 50")
}

func TestMissingPipeFails(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t,
		"--config", filepath.Join(dir, "none.yaml"),
		"--ui", "plain",
		"--pipe", filepath.Join(dir, "missing.fifo"),
	)
	require.Error(t, err)
	assert.True(t, errors.IsSourceOpenFailed(err))
}

func TestInvalidFlagsFail(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "none.yaml")

	_, err := execute(t, "--config", cfgFile, "--ui", "web")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))

	_, err = execute(t, "--config", cfgFile, "--ui", "plain", "--pipe", "watch:")
	require.Error(t, err)

	_, err = execute(t, "--config", cfgFile, "--ui", "plain", "--idle", "0")
	require.Error(t, err)
}

func TestPlainRunWithInitialPath(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithDefault(t, dir)
	logFile := filepath.Join(dir, "logs", "glance.log")

	_, err := execute(t,
		"--config", filepath.Join(dir, "none.yaml"),
		"--ui", "plain",
		"--log-file", logFile,
		"--debug",
		filepath.Join(dir, "test1.txt"),
	)
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Starting previewer")
}

func TestUnknownThemeFails(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "none.yaml")
	_, err := execute(t, "--config", cfgFile, "--ui", "plain", "--theme", "no-such-theme")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestCheckRenderer(t *testing.T) {
	err := checkRenderer(config.RendererGUI, false)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
	assert.Contains(t, err.Error(), "preview.renderer")

	assert.NoError(t, checkRenderer(config.RendererGUI, true))
	assert.NoError(t, checkRenderer(config.RendererTUI, false))
	assert.NoError(t, checkRenderer(config.RendererPlain, false))
}

func TestLogOptions(t *testing.T) {
	tests := []struct {
		name       string
		renderer   string
		withFile   bool
		wantStderr bool
	}{
		{name: "tui discards", renderer: config.RendererTUI},
		{name: "tui logs to file only", renderer: config.RendererTUI, withFile: true},
		{name: "plain logs to stderr", renderer: config.RendererPlain, wantStderr: true},
		{name: "plain logs to stderr and file", renderer: config.RendererPlain, withFile: true, wantStderr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.Preview.Renderer = tt.renderer
			if tt.withFile {
				cfg.Log.File = filepath.Join(t.TempDir(), "glance.log")
			}

			var stderr bytes.Buffer
			l := log.NewLogger(logOptions(cfg, &stderr)...)
			l.Info("Source started")
			require.NoError(t, l.Close())

			if tt.wantStderr {
				assert.Contains(t, stderr.String(), "Source started")
			} else {
				assert.Empty(t, stderr.String())
			}
			if tt.withFile {
				data, err := os.ReadFile(cfg.Log.File)
				require.NoError(t, err)
				assert.Contains(t, string(data), "Source started")
			}
		})
	}
}
