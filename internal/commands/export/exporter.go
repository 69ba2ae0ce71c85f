package exportcmd

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	goslug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

const (
	manifestFile    = "index.json"
	manifestVersion = 1
	pageFile        = "index.html"
)

// Manifest is the JSON document written for an exported section.
type Manifest struct {
	Version     int             `json:"version"`
	BuildID     string          `json:"build_id"`
	Section     string          `json:"section"`
	GeneratedAt time.Time       `json:"generated_at"`
	Posts       []ManifestEntry `json:"posts"`
}

// ManifestEntry is one post in a manifest, in listing order.
type ManifestEntry struct {
	interfaces.Post
	Href    string             `json:"href"`
	Outcome interfaces.Outcome `json:"outcome"`
	Issues  []string           `json:"issues,omitempty"`
	// Page is the fragment path relative to the section directory.
	Page     string `json:"page,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}

// ExportResult summarises an export run.
type ExportResult struct {
	BuildID      string
	Section      string
	ManifestPath string
	Posts        int
	Pages        int
	Degraded     int
	Placeholders int
}

// Exporter writes sections to disk. It never mutates content files.
type Exporter struct {
	loader interfaces.ContentLoader
	logger interfaces.Logger
	clock  func() time.Time
	newID  func() string
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithExporterLogger sets the exporter logger.
func WithExporterLogger(logger interfaces.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logging.OrNoOp(logger)
	}
}

// WithClock overrides the manifest timestamp source.
func WithClock(clock func() time.Time) ExporterOption {
	return func(e *Exporter) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithBuildIDGenerator overrides the build id source.
func WithBuildIDGenerator(fn func() string) ExporterOption {
	return func(e *Exporter) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// NewExporter builds an exporter reading through loader.
func NewExporter(loader interfaces.ContentLoader, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		loader: loader,
		logger: logging.NoOp(),
		clock:  time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportSection writes outDir/section/index.json and, when renderHTML is set,
// outDir/section/<slug>/index.html for every post.
func (e *Exporter) ExportSection(ctx context.Context, section, outDir string, renderHTML bool) (ExportResult, error) {
	section = strings.Trim(strings.TrimSpace(section), "/")
	sectionDir := filepath.Join(outDir, filepath.FromSlash(section))
	buildID := e.newID()
	logger := logging.WithFields(e.logger, map[string]any{
		"section":  section,
		"build_id": buildID,
	})

	if err := os.MkdirAll(sectionDir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("export: create %s: %w", sectionDir, err)
	}

	ctx = logging.ContextWithFields(ctx, map[string]any{"build_id": buildID})
	results := e.loader.LoadSectionResults(ctx, section)
	manifest := Manifest{
		Version:     manifestVersion,
		BuildID:     buildID,
		Section:     section,
		GeneratedAt: e.clock().UTC(),
		Posts:       make([]ManifestEntry, 0, len(results)),
	}
	result := ExportResult{BuildID: buildID, Section: section, Posts: len(results)}
	var names *pageNames
	if renderHTML {
		names = newPageNames(results)
	}

	for _, listed := range results {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		entry := ManifestEntry{
			Post:    listed.Post,
			Href:    listed.Post.Href(section),
			Outcome: listed.Outcome,
			Issues:  issueStrings(listed.Issues),
		}

		if renderHTML {
			full := e.loader.LoadPostResult(ctx, section, listed.Post.Slug)
			dirName := names.claim(listed.Post.Slug)
			page := filepath.Join(sectionDir, dirName, pageFile)
			html := []byte(full.Post.Content)
			if err := writeFile(page, html); err != nil {
				return result, err
			}
			entry.Page = dirName + "/" + pageFile
			entry.Href = pageHref(listed.Post, section, dirName)
			entry.Checksum = checksum(html)
			if full.Outcome != interfaces.OutcomeLoaded {
				entry.Outcome = full.Outcome
				entry.Issues = issueStrings(full.Issues)
			}
			result.Pages++
		}

		switch entry.Outcome {
		case interfaces.OutcomeDegraded:
			result.Degraded++
		case interfaces.OutcomePlaceholder:
			result.Placeholders++
		}
		manifest.Posts = append(manifest.Posts, entry)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return result, fmt.Errorf("export: encode manifest: %w", err)
	}
	result.ManifestPath = filepath.Join(sectionDir, manifestFile)
	if err := writeFile(result.ManifestPath, data); err != nil {
		return result, err
	}

	logger.Info("export.section.written",
		"posts", result.Posts,
		"pages", result.Pages,
		"degraded", result.Degraded,
		"placeholders", result.Placeholders,
	)
	return result, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: create %s: %w", filepath.Dir(path), err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// pageDirName normalizes slug for use as an output directory, keeping the
// original slug when normalization fails.
func pageDirName(slug string) string {
	if normalized, err := goslug.Normalize(slug); err == nil && normalized != "" {
		return normalized
	}
	return slug
}

// pageNames hands out one output directory per post. The first post with a
// given normalized slug keeps it; later ones get the lowest "-N" suffix that
// is neither claimed nor the natural name of another post in the section.
type pageNames struct {
	natural map[string]bool
	claimed map[string]bool
}

func newPageNames(results []interfaces.PostResult) *pageNames {
	names := &pageNames{
		natural: make(map[string]bool, len(results)),
		claimed: make(map[string]bool, len(results)),
	}
	for _, result := range results {
		names.natural[pageDirName(result.Post.Slug)] = true
	}
	return names
}

func (n *pageNames) claim(slug string) string {
	name := pageDirName(slug)
	candidate := name
	for i := 2; n.claimed[candidate] || (candidate != name && n.natural[candidate]); i++ {
		candidate = fmt.Sprintf("%s-%d", name, i)
	}
	n.claimed[candidate] = true
	return candidate
}

// pageHref points at the written page unless the post links elsewhere.
func pageHref(post interfaces.Post, section, dirName string) string {
	post.Slug = dirName
	return post.Href(section)
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func issueStrings(issues []error) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Error())
	}
	return out
}
