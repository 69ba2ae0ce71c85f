package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var ErrContentRootRequired = errors.New("site config: content root is required")
var ErrExtensionInvalid = errors.New("site config: content extension must start with a dot")
var ErrSectionOrderInvalid = errors.New("site config: section order is invalid")
var ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")

const (
	// OrderDate lists dated posts first, newest first, then by weight and title.
	OrderDate = "date"
	// OrderWeight lists weighted posts first, lightest first, then by date and title.
	OrderWeight = "weight"
)

// Config aggregates everything the loader needs. The content root is passed in
// explicitly; nothing is read from process-wide state.
type Config struct {
	// ContentRoot is the directory holding one sub-directory per section.
	ContentRoot string
	// Extension selects content files (default ".md").
	Extension string
	// DraftPrefix marks files that are skipped when listing (default "_").
	DraftPrefix string
	Sections    map[string]SectionConfig
	Markdown    MarkdownConfig
	Logging     LoggingConfig
	Export      ExportConfig
}

// SectionConfig holds per-section overrides.
type SectionConfig struct {
	Order string
}

// MarkdownConfig mirrors interfaces.RenderOptions for configuration files.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	Sanitize   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// ExportConfig controls the static export command.
type ExportConfig struct {
	OutputDir  string
	RenderHTML bool
}

// DefaultConfig returns the configuration used by the CLI when no flags are set.
func DefaultConfig() Config {
	return Config{
		ContentRoot: "content",
		Extension:   ".md",
		DraftPrefix: "_",
		Sections: map[string]SectionConfig{
			"projects": {Order: OrderDate},
			"photos":   {Order: OrderDate},
		},
		Markdown: MarkdownConfig{
			Sanitize: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Export: ExportConfig{
			OutputDir:  "out",
			RenderHTML: true,
		},
	}
}

// Validate checks the configuration for values the loader cannot work with.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.ContentRoot) == "" {
		return ErrContentRootRequired
	}
	if ext := strings.TrimSpace(cfg.Extension); ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: %s", ErrExtensionInvalid, ext)
	}
	for name, section := range cfg.Sections {
		if order := strings.TrimSpace(section.Order); order != "" && !isSupportedOrder(order) {
			return fmt.Errorf("%w: %s=%s", ErrSectionOrderInvalid, name, order)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// SectionOrder returns the configured order for section, defaulting to OrderDate.
func (cfg Config) SectionOrder(section string) string {
	if sc, ok := cfg.Sections[section]; ok {
		if order := strings.ToLower(strings.TrimSpace(sc.Order)); order != "" {
			return order
		}
	}
	return OrderDate
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedOrder(order string) bool {
	switch strings.ToLower(order) {
	case OrderDate, OrderWeight:
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
