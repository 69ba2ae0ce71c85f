package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by errors returned from Handler.Execute.
const (
	CodeCommandInvalid     = "SITE_COMMAND_INVALID"
	CodeCommandCancelled   = "SITE_COMMAND_CANCELLED"
	CodeCommandTimeout     = "SITE_COMMAND_TIMEOUT"
	CodeCommandInterrupted = "SITE_COMMAND_INTERRUPTED"
	CodeCommandFailed      = "SITE_COMMAND_FAILED"
)

// commandRef names the command an error came from, e.g. "export.section"
// run as the "export" operation.
type commandRef struct {
	command   string
	operation string
}

func (r commandRef) label() string {
	if r.operation != "" {
		return r.operation
	}
	if r.command != "" {
		return r.command
	}
	return "command"
}

func (r commandRef) wrap(err error, category goerrors.Category, code, what string) error {
	meta := map[string]any{}
	if r.command != "" {
		meta["command"] = r.command
	}
	if r.operation != "" {
		meta["operation"] = r.operation
	}
	wrapped := goerrors.Wrap(err, category, r.label()+": "+what).WithTextCode(code)
	if len(meta) > 0 {
		wrapped = wrapped.WithMetadata(meta)
	}
	return wrapped
}

// wrapValidationError re-codes go-command's VALIDATION_FAILED so callers see
// which site command rejected its arguments.
func wrapValidationError(ref commandRef, err error) error {
	if err == nil {
		return nil
	}
	return ref.wrap(err, goerrors.CategoryValidation, CodeCommandInvalid, "invalid arguments")
}

// wrapContextError tells an interrupted run (ctrl-c on the CLI) apart from
// one that hit the handler timeout.
func wrapContextError(ref commandRef, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return ref.wrap(err, goerrors.CategoryCommand, CodeCommandCancelled, "cancelled before the site output was complete")
	case errors.Is(err, context.DeadlineExceeded):
		return ref.wrap(err, goerrors.CategoryCommand, CodeCommandTimeout, "timed out before the site output was complete")
	default:
		return ref.wrap(err, goerrors.CategoryCommand, CodeCommandInterrupted, "interrupted")
	}
}

// wrapExecuteError keeps errors the command already categorised, such as
// the verify step's sensitive-file report, and tags the rest as failures.
func wrapExecuteError(ref commandRef, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return ref.wrap(err, goerrors.CategoryCommand, CodeCommandFailed, "failed")
}
