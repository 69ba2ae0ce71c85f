package exportcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecontent/internal/commands"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// ErrExporterRequired is returned when an export handler runs without an exporter.
var ErrExporterRequired = errors.New("export command: exporter is required")

var (
	_ command.Commander[ExportSectionCommand] = (*ExportSectionHandler)(nil)
	_ command.Commander[VerifyOutputCommand]  = (*VerifyOutputHandler)(nil)
)

// ExportSectionHandler runs ExportSectionCommand through the shared handler.
type ExportSectionHandler struct {
	inner *commands.Handler[ExportSectionCommand]
}

// NewExportSectionHandler binds a handler to exporter.
func NewExportSectionHandler(exporter *Exporter, logger interfaces.Logger, opts ...commands.HandlerOption[ExportSectionCommand]) *ExportSectionHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg ExportSectionCommand) error {
		if exporter == nil {
			return ErrExporterRequired
		}
		result, err := exporter.ExportSection(ctx, msg.Section, msg.OutputDir, msg.RenderHTML)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportSectionCommand]{
		commands.WithLogger[ExportSectionCommand](baseLogger),
		commands.WithOperation[ExportSectionCommand]("export.section"),
		commands.WithMessageFields(func(msg ExportSectionCommand) map[string]any {
			return map[string]any{
				"section":     msg.Section,
				"output_dir":  msg.OutputDir,
				"render_html": msg.RenderHTML,
			}
		}),
	}

	return &ExportSectionHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ExportSectionCommand].
func (h *ExportSectionHandler) Execute(ctx context.Context, msg ExportSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// VerifyOutputHandler runs VerifyOutputCommand through the shared handler.
type VerifyOutputHandler struct {
	inner *commands.Handler[VerifyOutputCommand]
}

// NewVerifyOutputHandler constructs the verification handler.
func NewVerifyOutputHandler(logger interfaces.Logger, opts ...commands.HandlerOption[VerifyOutputCommand]) *VerifyOutputHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg VerifyOutputCommand) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := VerifyOutput(msg.OutputDir, msg.Patterns)
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		for _, path := range result.Flagged {
			baseLogger.Warn("export.verify.sensitive_file", "path", path)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[VerifyOutputCommand]{
		commands.WithLogger[VerifyOutputCommand](baseLogger),
		commands.WithOperation[VerifyOutputCommand]("export.verify"),
		commands.WithMessageFields(func(msg VerifyOutputCommand) map[string]any {
			return map[string]any{"output_dir": msg.OutputDir}
		}),
	}

	return &VerifyOutputHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[VerifyOutputCommand].
func (h *VerifyOutputHandler) Execute(ctx context.Context, msg VerifyOutputCommand) error {
	return h.inner.Execute(ctx, msg)
}
