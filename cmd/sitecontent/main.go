package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-sitecontent"
)

var moduleBuilder = func(cfg sitecontent.Config) (*sitecontent.Module, error) {
	return sitecontent.New(cfg)
}

const usage = `usage: sitecontent <command> [flags]

commands:
  list    print a section's posts as JSON
  show    print one post with rendered HTML
  export  write a section manifest and HTML fragments
  verify  check an export directory for sensitive files`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("sitecontent: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "list":
		return runList(ctx, args[1:], stdout)
	case "show":
		return runShow(ctx, args[1:], stdout)
	case "export":
		return runExport(ctx, args[1:], stdout)
	case "verify":
		return runVerify(ctx, args[1:], stdout)
	case "-h", "--help", "help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

type commonFlags struct {
	contentDir *string
	order      *string
	logLevel   *string
	logFormat  *string
	provider   *string
}

func registerCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		contentDir: fs.String("content-dir", "content", "Path to the content root"),
		order:      fs.String("order", "", "Section order override (date or weight)"),
		logLevel:   fs.String("log-level", "warn", "Minimum log level"),
		logFormat:  fs.String("log-format", "", "go-logger format (json, console, pretty)"),
		provider:   fs.String("log-provider", "console", "Logging provider (console, gologger, none)"),
	}
}

func (f commonFlags) build(section string) (*sitecontent.Module, error) {
	cfg := sitecontent.DefaultConfig()
	cfg.ContentRoot = *f.contentDir
	cfg.Logging.Provider = *f.provider
	cfg.Logging.Level = *f.logLevel
	cfg.Logging.Format = *f.logFormat
	if order := strings.TrimSpace(*f.order); order != "" && section != "" {
		cfg.Sections[section] = sitecontent.SectionConfig{Order: order}
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Content() == nil {
		return nil, errors.New("content loader not configured")
	}
	return module, nil
}

func runList(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	common := registerCommon(fs)
	section := fs.String("section", "", "Section to list")
	outcomes := fs.Bool("outcomes", false, "Include load outcomes and issues")
	images := fs.Bool("images", false, "Only list posts with an image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *section == "" {
		return errors.New("--section is required")
	}

	module, err := common.build(*section)
	if err != nil {
		return err
	}

	if *outcomes {
		results := module.Content().LoadSectionResults(ctx, *section)
		return writeJSON(stdout, resultViews(results))
	}

	posts := module.Content().LoadSection(ctx, *section)
	if *images {
		posts = sitecontent.WithImages(posts)
	}
	return writeJSON(stdout, posts)
}

func runShow(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	common := registerCommon(fs)
	section := fs.String("section", "", "Section holding the post")
	slug := fs.String("slug", "", "Post slug (file name without extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *section == "" || *slug == "" {
		return errors.New("--section and --slug are required")
	}

	module, err := common.build(*section)
	if err != nil {
		return err
	}

	result := module.Content().LoadPostResult(ctx, *section, *slug)
	return writeJSON(stdout, resultViews([]sitecontent.PostResult{result})[0])
}

func runExport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	common := registerCommon(fs)
	section := fs.String("section", "", "Section to export")
	outputDir := fs.String("out", "out", "Export root directory")
	renderHTML := fs.Bool("render-html", true, "Write one HTML fragment per post")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := common.build(*section)
	if err != nil {
		return err
	}

	cmd := sitecontent.ExportSectionCommand{
		Section:    *section,
		OutputDir:  *outputDir,
		RenderHTML: *renderHTML,
		ResultCallback: func(result sitecontent.ExportResult) {
			fmt.Fprintf(stdout, "Build: %s\nManifest: %s\nPosts: %d (pages %d, degraded %d, placeholders %d)\n",
				result.BuildID, result.ManifestPath, result.Posts, result.Pages, result.Degraded, result.Placeholders)
		},
	}
	if err := module.ExportSection(ctx, cmd); err != nil {
		return fmt.Errorf("execute export command: %w", err)
	}
	return nil
}

func runVerify(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	common := registerCommon(fs)
	outputDir := fs.String("out", "out", "Export root directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := common.build("")
	if err != nil {
		return err
	}

	cmd := sitecontent.VerifyOutputCommand{
		OutputDir: *outputDir,
		ResultCallback: func(result sitecontent.VerifyResult) {
			fmt.Fprintf(stdout, "Checked %d files in %s\n", result.Checked, result.Root)
			for _, path := range result.Flagged {
				fmt.Fprintf(stdout, "  sensitive: %s\n", path)
			}
		},
	}
	if err := module.VerifyOutput(ctx, cmd); err != nil {
		return fmt.Errorf("execute verify command: %w", err)
	}
	return nil
}

type resultView struct {
	sitecontent.Post
	Outcome sitecontent.Outcome `json:"outcome"`
	Issues  []string            `json:"issues,omitempty"`
}

func resultViews(results []sitecontent.PostResult) []resultView {
	views := make([]resultView, 0, len(results))
	for _, result := range results {
		view := resultView{Post: result.Post, Outcome: result.Outcome}
		for _, issue := range result.Issues {
			view.Issues = append(view.Issues, issue.Error())
		}
		views = append(views, view)
	}
	return views
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
