package sitecontent

import (
	"context"

	exportcmd "github.com/goliatone/go-sitecontent/internal/commands/export"
	"github.com/goliatone/go-sitecontent/internal/content"
	"github.com/goliatone/go-sitecontent/internal/di"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// Post is a single content record.
type Post = interfaces.Post

// PostResult pairs a Post with its load outcome.
type PostResult = interfaces.PostResult

// Outcome tags how faithfully a Post reflects its source file.
type Outcome = interfaces.Outcome

// Extra is the free-form frontmatter mapping.
type Extra = interfaces.Extra

// ContentLoader exports the loader contract.
type ContentLoader = interfaces.ContentLoader

// LoggerProvider exports the logging provider contract.
type LoggerProvider = interfaces.LoggerProvider

// ExportSectionCommand exports the section export command.
type ExportSectionCommand = exportcmd.ExportSectionCommand

// VerifyOutputCommand exports the output verification command.
type VerifyOutputCommand = exportcmd.VerifyOutputCommand

// ExportResult summarises an export run.
type ExportResult = exportcmd.ExportResult

// VerifyResult summarises a verification run.
type VerifyResult = exportcmd.VerifyResult

const (
	OutcomeLoaded      = interfaces.OutcomeLoaded
	OutcomeDegraded    = interfaces.OutcomeDegraded
	OutcomePlaceholder = interfaces.OutcomePlaceholder
)

// Option customises module construction.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithContentFS      = di.WithContentFS
	WithRenderer       = di.WithRenderer
	WithContentLoader  = di.WithContentLoader
)

// Module is the top level façade over the loader and export commands.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg. Options override the logger provider,
// content filesystem or renderer.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the configured loader.
func (m *Module) Content() ContentLoader {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ContentLoader()
}

// Logger returns a logger scoped to name from the configured provider.
func (m *Module) Logger(name string) interfaces.Logger {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider().GetLogger(name)
}

// ExportSection runs ExportSectionCommand through its handler.
func (m *Module) ExportSection(ctx context.Context, cmd ExportSectionCommand) error {
	return m.container.ExportSectionHandler().Execute(ctx, cmd)
}

// VerifyOutput runs VerifyOutputCommand through its handler.
func (m *Module) VerifyOutput(ctx context.Context, cmd VerifyOutputCommand) error {
	return m.container.VerifyOutputHandler().Execute(ctx, cmd)
}

// SortPosts orders posts in place using a section order (OrderDate or OrderWeight).
func SortPosts(posts []Post, order string) {
	content.SortPosts(posts, order)
}

// DeriveTitle returns the fallback title for a slug.
func DeriveTitle(slug string) string {
	return content.DeriveTitle(slug)
}

// WithImages keeps the posts whose extra mapping carries an image URL.
func WithImages(posts []Post) []Post {
	return interfaces.WithImages(posts)
}
