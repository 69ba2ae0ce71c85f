package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// Renderer converts markdown into HTML with goldmark and, when sanitizing is
// enabled, scrubs the output with a bluemonday UGC policy. A Renderer holds no
// per-call state and can be shared.
type Renderer struct {
	opts   interfaces.RenderOptions
	engine goldmark.Markdown
	policy *bluemonday.Policy
	logger interfaces.Logger
}

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logging.OrNoOp(logger)
	}
}

// NewRenderer builds a renderer for opts.
func NewRenderer(opts interfaces.RenderOptions, options ...RendererOption) *Renderer {
	r := &Renderer{
		opts:   opts,
		engine: newGoldmarkEngine(opts),
		logger: logging.NoOp(),
	}
	if opts.Sanitize {
		r.policy = newSanitizePolicy()
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Render converts markdown into HTML.
func (r *Renderer) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	out := buf.Bytes()
	if r.policy != nil {
		out = r.policy.SanitizeBytes(out)
	}
	r.logger.Trace("markdown.render.completed", "input_bytes", len(markdown), "output_bytes", len(out))
	return out, nil
}

func newGoldmarkEngine(opts interfaces.RenderOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	// raw HTML only reaches the output when a sanitizer runs after goldmark
	if opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

func newSanitizePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("type").Matching(bluemonday.SpaceSeparatedTokens).OnElements("input")
	policy.AllowAttrs("checked", "disabled").OnElements("input")
	return policy
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// collectExtensions resolves extension names; unknown names are ignored.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		// GFM bundles tables, strikethrough, linkify and task lists
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext)
			seen[key] = struct{}{}
		}
	}
	return extenders
}
