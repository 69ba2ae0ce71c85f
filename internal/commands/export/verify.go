package exportcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultSensitivePatterns are file name fragments that must never appear in
// published output.
var DefaultSensitivePatterns = []string{".env", ".key", ".pem", ".p12", ".pfx"}

// ErrSensitiveFiles reports that the output directory contains files matching
// a sensitive pattern.
var ErrSensitiveFiles = errors.New("export: sensitive files in output")

const codeSensitiveFiles = "EXPORT_SENSITIVE_FILES"

// VerifyResult lists what a verification run looked at.
type VerifyResult struct {
	Root    string
	Checked int
	Flagged []string
}

// VerifyOutput walks root and flags every file whose name contains one of
// patterns. A missing root is not an error: nothing has been exported yet.
func VerifyOutput(root string, patterns []string) (VerifyResult, error) {
	if len(patterns) == 0 {
		patterns = DefaultSensitivePatterns
	}
	result := VerifyResult{Root: root}

	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		result.Checked++
		for _, pattern := range patterns {
			if strings.Contains(d.Name(), pattern) {
				result.Flagged = append(result.Flagged, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("export: verify %s: %w", root, err)
	}

	if len(result.Flagged) > 0 {
		return result, goerrors.Wrap(
			fmt.Errorf("%w: %s", ErrSensitiveFiles, strings.Join(result.Flagged, ", ")),
			goerrors.CategoryValidation,
			"export output failed verification",
		).WithTextCode(codeSensitiveFiles)
	}
	return result, nil
}
