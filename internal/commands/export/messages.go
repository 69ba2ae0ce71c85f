package exportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	exportSectionMessageType = "site.export.section"
	verifyOutputMessageType  = "site.export.verify"
)

// ExportCallback receives the result of an export run. It is optional and is
// invoked synchronously from the handler.
type ExportCallback func(ExportResult)

// VerifyCallback receives the result of a verification run.
type VerifyCallback func(VerifyResult)

// ExportSectionCommand writes a section manifest (and optionally one HTML
// fragment per post) below OutputDir.
type ExportSectionCommand struct {
	// Section names the content sub-directory to export.
	Section string `json:"section"`
	// OutputDir is the export root; files land in OutputDir/Section.
	OutputDir string `json:"output_dir"`
	// RenderHTML also writes OutputDir/Section/<slug>/index.html per post.
	RenderHTML     bool           `json:"render_html,omitempty"`
	ResultCallback ExportCallback `json:"-"`
}

// Type implements command.Message.
func (ExportSectionCommand) Type() string { return exportSectionMessageType }

// Validate ensures the section and output directory are usable.
func (cmd ExportSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Section, validation.Required, validation.By(plainSection)),
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(notBlank("site.export.section.output_dir_required"))),
	)
}

// VerifyOutputCommand scans an export directory for files that should never
// be published.
type VerifyOutputCommand struct {
	OutputDir string `json:"output_dir"`
	// Patterns overrides DefaultSensitivePatterns when set.
	Patterns       []string       `json:"patterns,omitempty"`
	ResultCallback VerifyCallback `json:"-"`
}

// Type implements command.Message.
func (VerifyOutputCommand) Type() string { return verifyOutputMessageType }

// Validate ensures an output directory is present.
func (cmd VerifyOutputCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(notBlank("site.export.verify.output_dir_required"))),
		validation.Field(&cmd.Patterns, validation.Each(validation.By(notBlank("site.export.verify.pattern_blank")))),
	)
}

func notBlank(code string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, "value must not be blank")
		}
		return nil
	}
}

func plainSection(value any) error {
	section, _ := value.(string)
	section = strings.Trim(strings.TrimSpace(section), "/")
	if section == "" || section == "." || strings.Contains(section, "..") {
		return validation.NewError("site.export.section.section_invalid", "section must be a relative directory name")
	}
	return nil
}
