package config

import (
	"strings"

	"pickles/internal/features"
)

// DefaultFeaturesDir is used when no feature paths are configured.
const DefaultFeaturesDir = "features"

// Normalize trims values, drops blank entries, and fills defaults.
func Normalize(cfg *Config) {
	cfg.Language = strings.TrimSpace(cfg.Language)
	if cfg.Language == "" {
		cfg.Language = features.DefaultLanguage
	}
	cfg.Features = compact(cfg.Features)
	if len(cfg.Features) == 0 {
		cfg.Features = []string{DefaultFeaturesDir}
	}
	cfg.Results.Format = strings.ToLower(strings.TrimSpace(cfg.Results.Format))
	cfg.Results.Files = compact(cfg.Results.Files)
	cfg.SystemUnderTest.Name = strings.TrimSpace(cfg.SystemUnderTest.Name)
	cfg.SystemUnderTest.Version = strings.TrimSpace(cfg.SystemUnderTest.Version)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
