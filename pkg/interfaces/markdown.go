package interfaces

import "context"

// MarkdownRenderer converts a markdown body into sanitized HTML.
type MarkdownRenderer interface {
	Render(ctx context.Context, markdown []byte) ([]byte, error)
}

// RenderOptions customises markdown rendering. Option names stay readable for
// configuration unmarshalling and CLI flags.
type RenderOptions struct {
	// Extensions lists goldmark extensions by name (gfm, table, linkify, ...).
	// Empty selects GFM (tables, strikethrough, linkify, task lists).
	Extensions []string
	HardWraps  bool
	// Sanitize passes the rendered HTML through a user-generated-content policy.
	Sanitize bool
}

// FrontMatterFormat identifies the delimiter style a file used.
type FrontMatterFormat string

const (
	FrontMatterNone FrontMatterFormat = ""
	FrontMatterYAML FrontMatterFormat = "yaml"
	FrontMatterTOML FrontMatterFormat = "toml"
)
