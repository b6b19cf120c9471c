package log

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glance/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapDefault points the package logger at opts for the duration of t
func swapDefault(t *testing.T, opts ...Option) {
	t.Helper()
	original := logger
	Configure(opts...)
	t.Cleanup(func() {
		logger.Close()
		logger = original
	})
}

func TestTextLayout(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Warnf("Preview load failed after %d attempts", 2)
	line := buf.String()
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] WARN: Preview load failed after 2 attempts`, line)
	assert.Contains(t, line, "caller=logger_test.go:")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestDebugIsGated(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(false)
	l.Debug("Reloading preview")
	assert.Empty(t, buf.String())

	SetDebug(true)
	l.With(F("path", "/tmp/a.txt")).Debug("Reloading preview")
	assert.Contains(t, buf.String(), "DEBUG: Reloading preview path=/tmp/a.txt")
}

func TestWorkerFieldsAreSortedAndInherited(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(WithOutput(&buf))
	worker := base.With(F("source", "watch:/srv/drop"), F("source_id", "4f1c"))

	worker.With(F("path", "/srv/drop/a.png")).Info("Ignoring path request")
	assert.Contains(t, buf.String(), "path=/srv/drop/a.png source=watch:/srv/drop source_id=4f1c")
	buf.Reset()

	worker.Info("Source closed")
	assert.Contains(t, buf.String(), "source=watch:/srv/drop source_id=4f1c")
	assert.NotContains(t, buf.String(), "path=", "child fields do not leak into the parent")
	buf.Reset()

	base.Info("Starting previewer")
	assert.NotContains(t, buf.String(), "source_id=")
}

func TestErrorFieldsFromOS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	_, statErr := os.Stat(path)
	err := errors.FromOS(statErr, "cannot stat", path)

	fields := map[string]interface{}{}
	for _, f := range ErrorFields(err) {
		fields[f.Key] = f.Value
	}
	assert.Equal(t, "file_not_found", fields["error_kind"])
	assert.Equal(t, path, fields["path"])
	assert.Contains(t, fields["error"], "cannot stat: "+path)

	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf)).With(F("source_id", "4f1c"))
	l.With(ErrorFields(err)...).Warn("Preview load failed")
	out := buf.String()
	assert.Contains(t, out, "error_kind=file_not_found")
	assert.Contains(t, out, "path="+path)
	assert.Contains(t, out, "source_id=4f1c")
}

func TestErrorFieldsByType(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		key   string
		value string
		kind  string
	}{
		{
			name:  "config",
			err:   errors.NewConfigError("invalid value", "preview.idle_interval_ms", errors.InvalidConfig, nil),
			key:   "param",
			value: "preview.idle_interval_ms",
			kind:  "invalid_config",
		},
		{
			name:  "source",
			err:   errors.NewSourceError("read failed", "/tmp/in.fifo", errors.SourceReadFailed, io.ErrUnexpectedEOF),
			key:   "source",
			value: "/tmp/in.fifo",
			kind:  "source_read_failed",
		},
		{
			name:  "nested",
			err:   errors.NewConfigError("bad pipe", "sources.pipes", errors.InvalidConfig, errors.NewSourceError("cannot open source", "/x", errors.SourceOpenFailed, nil)),
			key:   "source",
			value: "/x",
			kind:  "invalid_config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := map[string]interface{}{}
			for _, f := range ErrorFields(tt.err) {
				fields[f.Key] = f.Value
			}
			assert.Equal(t, tt.value, fields[tt.key])
			assert.Equal(t, tt.kind, fields["error_kind"])
			assert.Equal(t, tt.err.Error(), fields["error"])
		})
	}

	assert.Equal(t, []Field{F("error", "<nil>")}, ErrorFields(nil))
	assert.Equal(t, []Field{F("error", "plain"), F("error_kind", "unknown")}, ErrorFields(errors.New("plain")))
}

func TestLogErrorUsesPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	swapDefault(t, WithOutput(&buf))

	LogError(errors.NewSourceError("cannot open source", "/tmp/gone", errors.SourceOpenFailed, nil), "Cannot start source")
	out := buf.String()
	assert.Contains(t, out, "ERROR: Cannot start source")
	assert.Contains(t, out, "error_kind=source_open_failed")
	assert.Contains(t, out, "source=/tmp/gone")
}

func TestJSONEntries(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("source_id", "4f1c"), F("live_sources", 2)).Info("Source closed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Source closed", entry["message"])
	assert.Equal(t, "4f1c", entry["source_id"])
	assert.Equal(t, float64(2), entry["live_sources"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry["caller"], "logger_test.go:")
}

func TestFileSinkWithDiscardedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "glance.log")
	swapDefault(t, WithOutput(io.Discard), WithFile(path))

	Info("Starting glance %s", "dev")
	Debug("not written while debug is off")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: Starting glance dev")
	assert.NotContains(t, string(data), "not written")
}
