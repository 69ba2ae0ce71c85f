package content

import (
	"errors"
	"fmt"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrUnsafeSlug    = errors.New("content: slug must be a plain file name")
	ErrUnsafeSection = errors.New("content: section must be a relative directory")
	ErrFieldType     = errors.New("content: field has an unsupported type")
	ErrInvalidDate   = errors.New("content: date is not parseable")
	ErrInvalidWeight = errors.New("content: weight is not a number")
)

const (
	codeFileUnreadable     = "CONTENT_FILE_UNREADABLE"
	codeFileMissing        = "CONTENT_FILE_MISSING"
	codeFrontMatterInvalid = "CONTENT_FRONTMATTER_INVALID"
	codeFieldInvalid       = "CONTENT_FIELD_INVALID"
	codePathUnsafe         = "CONTENT_PATH_UNSAFE"
	codeRenderFailed       = "CONTENT_RENDER_FAILED"
	codeLoadCancelled      = "CONTENT_LOAD_CANCELLED"
)

func readIssue(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "content: file not found: "+path).
			WithTextCode(codeFileMissing)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "content: read "+path).
		WithTextCode(codeFileUnreadable)
}

func frontMatterIssue(path string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "content: frontmatter in "+path).
		WithTextCode(codeFrontMatterInvalid)
}

func fieldIssue(field string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryValidation, fmt.Sprintf("content: field %q", field)).
		WithTextCode(codeFieldInvalid)
}

func pathIssue(cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryValidation, "content: unsafe path").
		WithTextCode(codePathUnsafe)
}

func renderIssue(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "content: render markdown").
		WithTextCode(codeRenderFailed)
}

func cancelIssue(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "content: load cancelled").
		WithTextCode(codeLoadCancelled)
}
