package di

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-sitecontent/internal/commands"
	exportcmd "github.com/goliatone/go-sitecontent/internal/commands/export"
	"github.com/goliatone/go-sitecontent/internal/content"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/internal/logging/console"
	"github.com/goliatone/go-sitecontent/internal/logging/gologger"
	"github.com/goliatone/go-sitecontent/internal/markdown"
	"github.com/goliatone/go-sitecontent/internal/runtimeconfig"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// Option mutates the container before services are built.
type Option func(*Container)

// Container wires the loader, renderer and command handlers from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	contentFS      fs.FS
	renderer       interfaces.MarkdownRenderer

	loader        interfaces.ContentLoader
	exporter      *exportcmd.Exporter
	exportHandler *exportcmd.ExportSectionHandler
	verifyHandler *exportcmd.VerifyOutputHandler
}

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithContentFS reads content from fsys instead of Config.ContentRoot on disk.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithRenderer overrides the markdown renderer.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithContentLoader replaces the loader entirely.
func WithContentLoader(loader interfaces.ContentLoader) Option {
	return func(c *Container) {
		c.loader = loader
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureLoader()
	c.configureCommands()

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "", "console":
		level := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	case "gologger":
		provider, err := gologger.NewProvider(logCfg)
		if err != nil {
			return fmt.Errorf("configure logger provider: %w", err)
		}
		c.loggerProvider = provider
	case "none":
		c.loggerProvider = noopProvider{}
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, logCfg.Provider)
	}
	return nil
}

func (c *Container) configureLoader() {
	if c.loader != nil {
		return
	}

	renderer := c.renderer
	if renderer == nil {
		renderer = markdown.NewRenderer(interfaces.RenderOptions{
			Extensions: c.Config.Markdown.Extensions,
			HardWraps:  c.Config.Markdown.HardWraps,
			Sanitize:   c.Config.Markdown.Sanitize,
		}, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
	}

	opts := []content.LoaderOption{
		content.WithRenderer(renderer),
		content.WithLogger(logging.ContentLogger(c.loggerProvider)),
	}
	if c.contentFS != nil {
		opts = append(opts, content.WithFS(c.contentFS))
	}
	c.loader = content.NewLoaderFromConfig(c.Config, opts...)
}

func (c *Container) configureCommands() {
	logger := logging.ExportLogger(c.loggerProvider)
	c.exporter = exportcmd.NewExporter(c.loader, exportcmd.WithExporterLogger(logger))

	commandLogger := commands.CommandLogger(c.loggerProvider, "export")
	c.exportHandler = exportcmd.NewExportSectionHandler(c.exporter, commandLogger)
	c.verifyHandler = exportcmd.NewVerifyOutputHandler(commandLogger)
}

// LoggerProvider returns the active provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ContentLoader returns the configured loader.
func (c *Container) ContentLoader() interfaces.ContentLoader {
	return c.loader
}

// Exporter returns the section exporter.
func (c *Container) Exporter() *exportcmd.Exporter {
	return c.exporter
}

// ExportSectionHandler returns the export command handler.
func (c *Container) ExportSectionHandler() *exportcmd.ExportSectionHandler {
	return c.exportHandler
}

// VerifyOutputHandler returns the verification command handler.
func (c *Container) VerifyOutputHandler() *exportcmd.VerifyOutputHandler {
	return c.verifyHandler
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
