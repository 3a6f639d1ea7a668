package remotemedia_test

import (
	"errors"
	"testing"

	remotemedia "github.com/goliatone/go-remote-media"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := remotemedia.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidateStorageRequiresFeature(t *testing.T) {
	cfg := remotemedia.DefaultConfig()
	cfg.Storage.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, remotemedia.ErrStorageFeatureRequired) {
		t.Fatalf("expected ErrStorageFeatureRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := remotemedia.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, remotemedia.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidateUploadResourceType(t *testing.T) {
	cfg := remotemedia.DefaultConfig()
	cfg.Upload.DefaultResourceType = "sprite"
	if err := cfg.Validate(); !errors.Is(err, remotemedia.ErrUploadResourceTypeInvalid) {
		t.Fatalf("expected ErrUploadResourceTypeInvalid, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := remotemedia.DefaultConfig()
	cfg.Delivery.CloudName = ""
	if _, err := remotemedia.New(cfg); !errors.Is(err, remotemedia.ErrDeliveryCloudNameRequired) {
		t.Fatalf("expected ErrDeliveryCloudNameRequired, got %v", err)
	}
}
