package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/internal/runtimeconfig"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// rootName prefixes every site logger. Focus entries may name a module
// without it ("export" focuses "site.export").
const rootName = "site"

// Provider hands out go-logger child loggers behind interfaces.Logger.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds a go-logger provider from the site's logging settings.
// A blank level means info and a blank format means json; console and pretty
// are also accepted.
func NewProvider(cfg runtimeconfig.LoggingConfig) (*Provider, error) {
	level := normalizeLevel(cfg.Level)
	if level == "" {
		level = glog.Info
	}
	options := []glog.Option{glog.WithLevel(level)}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := siteFocus(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root}, nil
}

// GetLogger returns the named child logger. A blank name yields the "site"
// logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = rootName
	}
	return wrap(p.root.GetLogger(name))
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

// WithFields uses go-logger's FieldsLogger extension when the inner logger
// has it; otherwise the fields are dropped.
func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return wrap(with.WithFields(maps.Clone(fields)))
	}
	return l
}

// WithContext also lifts fields stored with logging.ContextWithFields, such as
// the export build id, onto the go-logger entry.
func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	inner := l.inner.WithContext(ctx)
	if fields := logging.ContextFields(ctx); len(fields) > 0 {
		if with, ok := inner.(glog.FieldsLogger); ok {
			inner = with.WithFields(fields)
		}
	}
	return wrap(inner)
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}

func siteFocus(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.Trim(strings.TrimSpace(name), ".")
		switch {
		case name == "":
			continue
		case name == rootName || strings.HasPrefix(name, rootName+"."):
			out = append(out, name)
		default:
			out = append(out, rootName+"."+name)
		}
	}
	return slices.Compact(slices.Sorted(slices.Values(out)))
}
