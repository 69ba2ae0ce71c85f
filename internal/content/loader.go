package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/internal/markdown"
	"github.com/goliatone/go-sitecontent/internal/runtimeconfig"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

const (
	defaultExtension   = ".md"
	defaultDraftPrefix = "_"
)

// Loader reads sections of markdown files into posts. Every call reads the
// files afresh; a Loader keeps no state between calls.
type Loader struct {
	fs          fs.FS
	root        string
	extension   string
	draftPrefix string
	orders      map[string]string
	renderer    interfaces.MarkdownRenderer
	logger      interfaces.Logger
}

var _ interfaces.ContentLoader = (*Loader)(nil)

// LoaderOption configures a Loader at construction time.
type LoaderOption func(*Loader)

// WithFS replaces the filesystem the loader reads from. The root passed to
// NewLoader is then only used in log entries.
func WithFS(filesystem fs.FS) LoaderOption {
	return func(l *Loader) {
		if filesystem != nil {
			l.fs = filesystem
		}
	}
}

// WithExtension selects which files count as content (default ".md").
func WithExtension(ext string) LoaderOption {
	return func(l *Loader) {
		if ext = strings.TrimSpace(ext); ext != "" {
			l.extension = ext
		}
	}
}

// WithDraftPrefix sets the file name prefix that hides files from listings.
// An empty prefix disables draft filtering.
func WithDraftPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.draftPrefix = prefix
	}
}

// WithSectionOrders maps section names to runtimeconfig.OrderDate or
// runtimeconfig.OrderWeight.
func WithSectionOrders(orders map[string]string) LoaderOption {
	return func(l *Loader) {
		for section, order := range orders {
			l.orders[section] = order
		}
	}
}

// WithRenderer sets the markdown renderer used by LoadPost.
func WithRenderer(renderer interfaces.MarkdownRenderer) LoaderOption {
	return func(l *Loader) {
		if renderer != nil {
			l.renderer = renderer
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logging.OrNoOp(logger)
	}
}

// NewLoader builds a loader over the directory root.
func NewLoader(root string, opts ...LoaderOption) *Loader {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	l := &Loader{
		fs:          os.DirFS(root),
		root:        root,
		extension:   defaultExtension,
		draftPrefix: defaultDraftPrefix,
		orders:      map[string]string{},
		renderer:    markdown.NewRenderer(interfaces.RenderOptions{Sanitize: true}),
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLoaderFromConfig builds a loader from runtime configuration.
func NewLoaderFromConfig(cfg runtimeconfig.Config, opts ...LoaderOption) *Loader {
	orders := make(map[string]string, len(cfg.Sections))
	for name := range cfg.Sections {
		orders[name] = cfg.SectionOrder(name)
	}
	base := []LoaderOption{
		WithExtension(cfg.Extension),
		WithDraftPrefix(cfg.DraftPrefix),
		WithSectionOrders(orders),
		WithRenderer(markdown.NewRenderer(interfaces.RenderOptions{
			Extensions: cfg.Markdown.Extensions,
			HardWraps:  cfg.Markdown.HardWraps,
			Sanitize:   cfg.Markdown.Sanitize,
		})),
	}
	return NewLoader(cfg.ContentRoot, append(base, opts...)...)
}

// LoadSection returns the section's posts sorted for listing, without
// rendered content.
func (l *Loader) LoadSection(ctx context.Context, section string) []interfaces.Post {
	return interfaces.Posts(l.LoadSectionResults(ctx, section))
}

// LoadSectionResults lists the section directory and builds one result per
// content file. A missing directory yields an empty slice.
func (l *Loader) LoadSectionResults(ctx context.Context, section string) []interfaces.PostResult {
	logger := logging.WithPostContext(l.logger.WithContext(ctx), section, "", "")

	dir, err := cleanSection(section)
	if err != nil {
		logger.Warn("content.section.rejected", "error", err)
		return []interfaces.PostResult{}
	}

	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("content.section.missing", "root", l.root)
		} else {
			logger.Warn("content.section.unreadable", "root", l.root, "error", err)
		}
		return []interfaces.PostResult{}
	}

	results := make([]interfaces.PostResult, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !l.isListed(name) {
			continue
		}
		slug := strings.TrimSuffix(name, l.extension)
		results = append(results, l.load(ctx, dir, slug, false))
	}

	sortResults(results, l.order(dir))
	logger.Debug("content.section.loaded", "count", len(results))
	return results
}

// LoadPost reads a single post and renders its body into HTML. Unreadable
// files produce a placeholder with a derived title and empty content.
func (l *Loader) LoadPost(ctx context.Context, section, slug string) interfaces.Post {
	return l.LoadPostResult(ctx, section, slug).Post
}

// LoadPostResult is LoadPost with the outcome and issues attached.
func (l *Loader) LoadPostResult(ctx context.Context, section, slug string) interfaces.PostResult {
	dir, err := cleanSection(section)
	if err == nil {
		err = checkSlug(slug)
	}
	if err != nil {
		logging.WithPostContext(l.logger.WithContext(ctx), section, slug, "").Warn("content.post.rejected", "error", err)
		return placeholder(slug, pathIssue(err))
	}
	return l.load(ctx, dir, slug, true)
}

func (l *Loader) load(ctx context.Context, dir, slug string, render bool) interfaces.PostResult {
	file := path.Join(dir, slug+l.extension)
	logger := logging.WithPostContext(l.logger.WithContext(ctx), dir, slug, file)

	if err := ctx.Err(); err != nil {
		return placeholder(slug, cancelIssue(err))
	}

	source, err := fs.ReadFile(l.fs, file)
	if err != nil {
		logger.Warn("content.file.unreadable", "error", err)
		return placeholder(slug, readIssue(file, err))
	}

	meta, body, format, err := markdown.ParseFrontMatter(source)
	if err != nil {
		logger.Warn("content.frontmatter.invalid", "format", string(format), "error", err)
		return placeholder(slug, frontMatterIssue(file, err))
	}

	post, issues := BuildPost(slug, meta)
	for _, issue := range issues {
		logger.Warn("content.field.invalid", "error", issue)
	}

	if render {
		html, err := l.renderer.Render(ctx, body)
		if err != nil {
			logger.Warn("content.render.failed", "error", err)
			issues = append(issues, renderIssue(err))
			post.Content = string(body)
		} else {
			post.Content = string(html)
		}
	}

	outcome := interfaces.OutcomeLoaded
	if len(issues) > 0 {
		outcome = interfaces.OutcomeDegraded
	}
	return interfaces.PostResult{Post: post, Outcome: outcome, Issues: issues}
}

func (l *Loader) isListed(name string) bool {
	if !strings.HasSuffix(name, l.extension) {
		return false
	}
	if l.draftPrefix != "" && strings.HasPrefix(name, l.draftPrefix) {
		return false
	}
	return true
}

func (l *Loader) order(section string) string {
	if order, ok := l.orders[section]; ok {
		return order
	}
	return runtimeconfig.OrderDate
}

func placeholder(slug string, issue error) interfaces.PostResult {
	return interfaces.PostResult{
		Post: interfaces.Post{
			Slug:  slug,
			Title: DeriveTitle(slug),
		},
		Outcome: interfaces.OutcomePlaceholder,
		Issues:  []error{issue},
	}
}

func cleanSection(section string) (string, error) {
	dir := path.Clean(strings.Trim(strings.TrimSpace(section), "/"))
	if dir == "." || !fs.ValidPath(dir) {
		return "", ErrUnsafeSection
	}
	return dir, nil
}

func checkSlug(slug string) error {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return ErrUnsafeSlug
	}
	return nil
}
