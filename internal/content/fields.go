package content

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/karlseguin/typed"

	"github.com/goliatone/go-sitecontent/internal/markdown"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldDate        = "date"
	fieldWeight      = "weight"
	fieldExtra       = "extra"
)

var knownFields = map[string]struct{}{
	fieldTitle:       {},
	fieldDescription: {},
	fieldDate:        {},
	fieldWeight:      {},
	fieldExtra:       {},
}

// BuildPost validates frontmatter and returns the resulting post together with
// one issue per field that had to be dropped, coerced or defaulted. It never
// fails: the slug and a non-empty title are always set.
func BuildPost(slug string, meta markdown.FrontMatter) (interfaces.Post, []error) {
	data := typed.Typed(meta)
	var issues []error

	post := interfaces.Post{Slug: slug}

	post.Title = DeriveTitle(slug)
	if raw, ok := data[fieldTitle]; ok && raw != nil {
		if title, isString := data.StringIf(fieldTitle); isString {
			if strings.TrimSpace(title) != "" {
				post.Title = title
			}
		} else {
			issues = append(issues, fieldIssue(fieldTitle, fmt.Errorf("%w: %T", ErrFieldType, raw)))
		}
	}

	if raw, ok := data[fieldDescription]; ok && raw != nil {
		if description, isString := data.StringIf(fieldDescription); isString {
			post.Description = description
		} else {
			post.Description = fmt.Sprint(raw)
			issues = append(issues, fieldIssue(fieldDescription, fmt.Errorf("%w: %T coerced to string", ErrFieldType, raw)))
		}
	}

	if raw, ok := data[fieldDate]; ok {
		date, err := validateDate(raw)
		if err != nil {
			issues = append(issues, fieldIssue(fieldDate, err))
		}
		post.Date = date
	}

	if raw, ok := data[fieldWeight]; ok {
		weight, err := validateWeight(raw)
		if err != nil {
			issues = append(issues, fieldIssue(fieldWeight, err))
		}
		post.Weight = &weight
	}

	if raw, ok := data[fieldExtra]; ok && raw != nil {
		if extra, isMap := raw.(map[string]any); isMap {
			post.Extra = interfaces.Extra(extra)
		} else {
			issues = append(issues, fieldIssue(fieldExtra, fmt.Errorf("%w: %T is not a mapping", ErrFieldType, raw)))
		}
	}

	for key, value := range meta {
		if _, known := knownFields[key]; known {
			continue
		}
		if post.Params == nil {
			post.Params = map[string]any{}
		}
		post.Params[key] = value
	}

	return post, issues
}

// validateDate returns the date as authored when it parses. TOML and YAML
// timestamps are formatted back to ISO form.
func validateDate(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return "", nil
		}
		if _, err := dateparse.ParseAny(trimmed); err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDate, v)
		}
		return trimmed, nil
	case time.Time:
		return formatTimestamp(v), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrFieldType, value)
	}
}

func formatTimestamp(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

// validateWeight returns the numeric weight, or 0 with an error when the value
// is not a finite number.
func validateWeight(value any) (float64, error) {
	var weight float64
	switch v := value.(type) {
	case int:
		weight = float64(v)
	case int8:
		weight = float64(v)
	case int16:
		weight = float64(v)
	case int32:
		weight = float64(v)
	case int64:
		weight = float64(v)
	case uint:
		weight = float64(v)
	case uint8:
		weight = float64(v)
	case uint16:
		weight = float64(v)
	case uint32:
		weight = float64(v)
	case uint64:
		weight = float64(v)
	case float32:
		weight = float64(v)
	case float64:
		weight = v
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidWeight, value)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWeight, value)
	}
	return weight, nil
}
