package sitecontent_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sitecontent"
)

func TestConfigValidateRequiresContentRoot(t *testing.T) {
	cfg := sitecontent.DefaultConfig()
	cfg.ContentRoot = ""
	if err := cfg.Validate(); !errors.Is(err, sitecontent.ErrContentRootRequired) {
		t.Fatalf("expected ErrContentRootRequired, got %v", err)
	}
}

func TestConfigValidateSectionOrder(t *testing.T) {
	cfg := sitecontent.DefaultConfig()
	cfg.Sections["posts"] = sitecontent.SectionConfig{Order: "random"}
	if err := cfg.Validate(); !errors.Is(err, sitecontent.ErrSectionOrderInvalid) {
		t.Fatalf("expected ErrSectionOrderInvalid, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := sitecontent.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, sitecontent.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := sitecontent.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}
