package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-sitecontent"
)

func withTestModule(t *testing.T) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	fsys := fstest.MapFS{
		"projects/alpha.md":  &fstest.MapFile{Data: []byte("---\ntitle: Alpha\ndate: \"2023-01-01\"\n---\nAlpha *body*\n")},
		"projects/beta.md":   &fstest.MapFile{Data: []byte("---\ntitle: Beta\ndate: \"2024-01-01\"\n---\n")},
		"projects/broken.md": &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\n")},
	}
	moduleBuilder = func(cfg sitecontent.Config) (*sitecontent.Module, error) {
		cfg.Logging.Provider = "none"
		return sitecontent.New(cfg, sitecontent.WithContentFS(fsys))
	}
}

func TestRunListPrintsSortedJSON(t *testing.T) {
	withTestModule(t)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"list", "-section", "projects"}, &out); err != nil {
		t.Fatalf("run list: %v", err)
	}

	var posts []sitecontent.Post
	if err := json.Unmarshal(out.Bytes(), &posts); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	got := make([]string, 0, len(posts))
	for _, post := range posts {
		got = append(got, post.Slug)
	}
	if strings.Join(got, ",") != "beta,alpha,broken" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestRunListWithOutcomes(t *testing.T) {
	withTestModule(t)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"list", "-section", "projects", "-outcomes"}, &out); err != nil {
		t.Fatalf("run list: %v", err)
	}
	if !strings.Contains(out.String(), `"outcome": "placeholder"`) {
		t.Fatalf("expected placeholder outcome in output:\n%s", out.String())
	}
}

func TestRunShowRendersHTML(t *testing.T) {
	withTestModule(t)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"show", "-section", "projects", "-slug", "alpha"}, &out); err != nil {
		t.Fatalf("run show: %v", err)
	}
	if !strings.Contains(out.String(), `<em>body</em>`) {
		t.Fatalf("expected rendered html in output:\n%s", out.String())
	}
}

func TestRunExportThenVerify(t *testing.T) {
	withTestModule(t)
	dir := t.TempDir()

	var out bytes.Buffer
	if err := run(context.Background(), []string{"export", "-section", "projects", "-out", dir}, &out); err != nil {
		t.Fatalf("run export: %v", err)
	}
	if !strings.Contains(out.String(), "Posts: 3") {
		t.Fatalf("expected summary, got:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "projects", "alpha", "index.html")); err != nil {
		t.Fatalf("expected fragment: %v", err)
	}

	out.Reset()
	if err := run(context.Background(), []string{"verify", "-out", dir}, &out); err != nil {
		t.Fatalf("run verify: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SECRET=1"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := run(context.Background(), []string{"verify", "-out", dir}, &out); err == nil {
		t.Fatal("expected verify to fail with a .env file present")
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	if err := run(context.Background(), []string{"publish"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRunListRequiresSection(t *testing.T) {
	withTestModule(t)
	if err := run(context.Background(), []string{"list"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error without --section")
	}
}
