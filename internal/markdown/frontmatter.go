package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

const (
	tomlDelimiter = "+++"
	yamlDelimiter = "---"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrFrontMatterUnclosed reports a file that opens a metadata block and never
// closes it.
var ErrFrontMatterUnclosed = errors.New("frontmatter block is not closed")

var (
	tomlFormat = frontmatter.NewFormat(tomlDelimiter, tomlDelimiter, toml.Unmarshal)
	yamlFormat = frontmatter.NewFormat(yamlDelimiter, yamlDelimiter, yaml.Unmarshal)
)

// FrontMatter is the raw metadata block of a content file. Nested mappings are
// normalized to map[string]any and sequences to []any.
type FrontMatter map[string]any

// ParseFrontMatter extracts the metadata block and the markdown body from
// source. The returned format reports which delimiter style was found. A file
// without frontmatter yields an empty map and the whole file as body; a file
// whose first line is a delimiter must close the block.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, interfaces.FrontMatterFormat, error) {
	source = bytes.TrimPrefix(source, utf8BOM)

	format, kind := yamlFormat, interfaces.FrontMatterYAML
	if bytes.HasPrefix(source, []byte(tomlDelimiter)) {
		format, kind = tomlFormat, interfaces.FrontMatterTOML
	} else if !bytes.HasPrefix(source, []byte(yamlDelimiter)) {
		kind = interfaces.FrontMatterNone
	}

	if delim, ok := openingDelimiter(source); ok && !hasClosingDelimiter(source, delim) {
		return nil, nil, kind, fmt.Errorf("parse %s frontmatter: %w", kind, ErrFrontMatterUnclosed)
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, format)
	if err != nil {
		return nil, nil, kind, fmt.Errorf("parse %s frontmatter: %w", kind, err)
	}

	return FrontMatter(normalizeMap(meta)), body, kind, nil
}

// openingDelimiter reports the delimiter when it fills the first line.
func openingDelimiter(source []byte) (string, bool) {
	first, _, _ := bytes.Cut(source, []byte("\n"))
	line := string(bytes.TrimRight(first, " \t\r"))
	if line == yamlDelimiter || line == tomlDelimiter {
		return line, true
	}
	return "", false
}

func hasClosingDelimiter(source []byte, delim string) bool {
	lines := bytes.Split(source, []byte("\n"))
	for _, line := range lines[1:] {
		if string(bytes.TrimRight(line, " \t\r")) == delim {
			return true
		}
	}
	return false
}

func normalizeMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeMap(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
