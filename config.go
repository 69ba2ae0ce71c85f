package sitecontent

import "github.com/goliatone/go-sitecontent/internal/runtimeconfig"

var (
	ErrContentRootRequired    = runtimeconfig.ErrContentRootRequired
	ErrExtensionInvalid       = runtimeconfig.ErrExtensionInvalid
	ErrSectionOrderInvalid    = runtimeconfig.ErrSectionOrderInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	OrderDate   = runtimeconfig.OrderDate
	OrderWeight = runtimeconfig.OrderWeight
)

type (
	Config         = runtimeconfig.Config
	SectionConfig  = runtimeconfig.SectionConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	ExportConfig   = runtimeconfig.ExportConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
