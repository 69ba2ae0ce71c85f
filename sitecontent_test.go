package sitecontent_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-sitecontent"
)

func newTestModule(t *testing.T) *sitecontent.Module {
	t.Helper()
	cfg := sitecontent.DefaultConfig()
	cfg.Logging.Provider = "none"
	cfg.Sections["projects"] = sitecontent.SectionConfig{Order: sitecontent.OrderWeight}

	fsys := fstest.MapFS{
		"projects/first.md":  &fstest.MapFile{Data: []byte("---\ntitle: First\nweight: 1\n---\nFirst body\n")},
		"projects/second.md": &fstest.MapFile{Data: []byte("---\ntitle: Second\nweight: 2\ndate: \"2024-01-01\"\n---\n")},
		"projects/dated.md":  &fstest.MapFile{Data: []byte("---\ntitle: Dated\ndate: \"2025-01-01\"\n---\n")},
		"photos/shot.md":     &fstest.MapFile{Data: []byte("---\ntitle: Shot\nextra:\n  local_image: /img/shot.jpg\n---\n")},
	}

	module, err := sitecontent.New(cfg, sitecontent.WithContentFS(fsys))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return module
}

func TestModuleContentHonoursSectionOrder(t *testing.T) {
	module := newTestModule(t)

	posts := module.Content().LoadSection(context.Background(), "projects")
	want := []string{"first", "second", "dated"}
	if len(posts) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(posts))
	}
	for i, slug := range want {
		if posts[i].Slug != slug {
			t.Fatalf("position %d: expected %s, got %s", i, slug, posts[i].Slug)
		}
	}
}

func TestModuleLoadPostRendersHTML(t *testing.T) {
	module := newTestModule(t)

	result := module.Content().LoadPostResult(context.Background(), "projects", "first")
	if result.Outcome != sitecontent.OutcomeLoaded {
		t.Fatalf("expected loaded outcome, got %s (%v)", result.Outcome, result.Issues)
	}
	if result.Post.Content != "<p>First body</p>\n" {
		t.Fatalf("unexpected content %q", result.Post.Content)
	}
}

func TestModuleExportAndVerify(t *testing.T) {
	module := newTestModule(t)
	out := t.TempDir()

	var exported sitecontent.ExportResult
	err := module.ExportSection(context.Background(), sitecontent.ExportSectionCommand{
		Section:        "photos",
		OutputDir:      out,
		RenderHTML:     true,
		ResultCallback: func(result sitecontent.ExportResult) { exported = result },
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported.Posts != 1 || exported.Pages != 1 {
		t.Fatalf("unexpected export result %+v", exported)
	}
	if _, err := os.Stat(filepath.Join(out, "photos", "shot", "index.html")); err != nil {
		t.Fatalf("expected fragment on disk: %v", err)
	}

	if err := module.VerifyOutput(context.Background(), sitecontent.VerifyOutputCommand{OutputDir: out}); err != nil {
		t.Fatalf("expected clean export, got %v", err)
	}
}

func TestWithImages(t *testing.T) {
	module := newTestModule(t)
	posts := module.Content().LoadSection(context.Background(), "photos")
	if got := sitecontent.WithImages(posts); len(got) != 1 {
		t.Fatalf("expected one post with an image, got %d", len(got))
	}
}

func TestDeriveTitle(t *testing.T) {
	if got := sitecontent.DeriveTitle("hello-world"); got != "Hello World" {
		t.Fatalf("expected Hello World, got %q", got)
	}
}
