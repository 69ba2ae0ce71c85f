package exportcmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

func TestExportSectionHandler_Execute(t *testing.T) {
	loader := &stubLoader{
		list: []interfaces.PostResult{
			{Post: interfaces.Post{Slug: "alpha", Title: "Alpha"}, Outcome: interfaces.OutcomeLoaded},
		},
	}
	out := t.TempDir()
	handler := NewExportSectionHandler(fixedExporter(loader), nil)

	var captured ExportResult
	cmd := ExportSectionCommand{
		Section:   "projects",
		OutputDir: out,
		ResultCallback: func(result ExportResult) {
			captured = result
		},
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if captured.BuildID != "build-1" || captured.Posts != 1 {
		t.Fatalf("unexpected callback result %+v", captured)
	}
	if _, err := os.Stat(filepath.Join(out, "projects", "index.json")); err != nil {
		t.Fatalf("expected manifest on disk: %v", err)
	}
}

func TestExportSectionHandler_ValidationErrors(t *testing.T) {
	handler := NewExportSectionHandler(fixedExporter(&stubLoader{}), nil)

	cases := map[string]ExportSectionCommand{
		"missing section":   {OutputDir: t.TempDir()},
		"escaping section":  {Section: "../secrets", OutputDir: t.TempDir()},
		"missing directory": {Section: "projects", OutputDir: "  "},
	}
	for name, cmd := range cases {
		t.Run(name, func(t *testing.T) {
			err := handler.Execute(context.Background(), cmd)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}
}

func TestExportSectionHandler_NilExporter(t *testing.T) {
	handler := NewExportSectionHandler(nil, nil)
	err := handler.Execute(context.Background(), ExportSectionCommand{Section: "projects", OutputDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error without exporter")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestVerifyOutputHandler_Execute(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "site.key"))

	var captured VerifyResult
	handler := NewVerifyOutputHandler(nil)
	err := handler.Execute(context.Background(), VerifyOutputCommand{
		OutputDir:      root,
		ResultCallback: func(result VerifyResult) { captured = result },
	})
	if err == nil {
		t.Fatal("expected verification failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category to survive the handler, got %v", err)
	}
	if len(captured.Flagged) != 1 {
		t.Fatalf("expected callback with one flagged file, got %+v", captured)
	}
}

func TestVerifyOutputHandler_CleanDirectory(t *testing.T) {
	handler := NewVerifyOutputHandler(nil)
	if err := handler.Execute(context.Background(), VerifyOutputCommand{OutputDir: filepath.Join(t.TempDir(), "none")}); err != nil {
		t.Fatalf("expected success on missing directory, got %v", err)
	}
}
