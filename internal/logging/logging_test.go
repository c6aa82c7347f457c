// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notes2md/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    types.LoggingConfig
		errMsg string
	}{
		{name: "defaults", cfg: types.LoggingConfig{}},
		{name: "debug json", cfg: types.LoggingConfig{Level: "debug", Format: "json"}},
		{name: "warning alias pretty", cfg: types.LoggingConfig{Level: "Warning", Format: "pretty"}},
		{name: "trace console", cfg: types.LoggingConfig{Level: "trace", Format: "console"}},
		{name: "bad level", cfg: types.LoggingConfig{Level: "loud"}, errMsg: `unsupported log level "loud"`},
		{name: "bad format", cfg: types.LoggingConfig{Format: "xml"}, errMsg: `unsupported log format "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p, err := New(tt.cfg, &buf)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			l := p.Get("convert")
			require.NotNil(t, l)
			l.Error("logger.ready", "component", "convert")
			assert.Contains(t, buf.String(), "logger.ready")
		})
	}
}

func TestConsoleWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(types.LoggingConfig{}, &buf)
	require.NoError(t, err)

	p.Get("convert").Info("export decoded", "active", 2)
	p.Get("convert").Debug("hidden at info")

	out := buf.String()
	assert.Contains(t, out, `msg="export decoded"`)
	assert.Contains(t, out, "logger=convert")
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "ts=")
	assert.NotContains(t, out, "hidden at info")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(types.LoggingConfig{Level: "trace", Format: "json"}, &buf)
	require.NoError(t, err)

	p.Get("ledger").Warn("slow", "ms", 12)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "ledger", line["logger"])
	assert.Equal(t, "slow", line["msg"])
	assert.Contains(t, line, "ts")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(types.LoggingConfig{Level: "error"}, &buf)
	require.NoError(t, err)

	l := p.Get("")
	l.Warn("dropped")
	l.Error("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNilProviderIsNop(t *testing.T) {
	var p *Provider
	l := p.Get("anything")
	require.NotNil(t, l)
	assert.NotPanics(t, func() {
		l.Info("ignored", "k", "v")
		l.Error("ignored")
	})
}
