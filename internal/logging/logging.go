// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured logger used across notes2md.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/pdiddy/notes2md/pkg/types"
)

// Logger is the leveled logging contract the pipeline depends on. glog and
// slog loggers satisfy it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Provider hands out named child loggers.
type Provider struct {
	root *slog.Logger
}

// New builds a Provider from cfg writing to w. A nil w means os.Stderr, so
// log lines never mix with converted output on stdout.
// Handlers match glog's own setup: slog text for console, slog JSON for
// json, glog's color console handler for pretty.
func New(cfg types.LoggingConfig, w io.Writer) (*Provider, error) {
	if w == nil {
		w = os.Stderr
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceAttr}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", glog.LoggerTypeConsole:
		handler = slog.NewTextHandler(w, opts)
	case glog.LoggerTypeJSON:
		handler = slog.NewJSONHandler(w, opts)
	case glog.LoggerTypePretty:
		handler = glog.NewColorConsoleHandler(w, opts)
	default:
		return nil, fmt.Errorf("unsupported log format %q: use console, json, or pretty", cfg.Format)
	}

	return &Provider{root: slog.New(handler)}, nil
}

// Get returns the logger for a component. A nil Provider yields a no-op
// logger.
func (p *Provider) Get(name string) Logger {
	if p == nil {
		return Nop()
	}
	if name == "" {
		return p.root
	}
	return p.root.With("logger", name)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "trace":
		return glog.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unsupported log level %q", level)
}

// replaceAttr renames the time key and prints levels with glog's labels.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "ts"
	case slog.LevelKey:
		lvl, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		label, found := glog.CustomLevels[lvl]
		if !found {
			label = lvl.String()
		}
		a.Value = slog.StringValue(strings.ToLower(label))
	}
	return a
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

// Nop returns a logger that discards everything.
func Nop() Logger { return nop{} }
