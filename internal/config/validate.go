package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pickles/internal/features"
	"pickles/internal/results"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config. Feature paths are resolved against
// baseDir; result files are not required to exist yet.
func Validate(cfg *Config, baseDir string) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if !features.KnownLanguage(cfg.Language) {
		add("language", fmt.Sprintf("unknown gherkin language %q", cfg.Language))
	}

	if baseDir == "" {
		baseDir = "."
	}
	if len(cfg.Features) == 0 {
		add("features", "must include at least one entry")
	}
	for i, entry := range cfg.Features {
		field := fmt.Sprintf("features[%d]", i)
		if strings.ContainsAny(entry, "*?[]") {
			if _, err := filepath.Match(entry, ""); err != nil {
				add(field, fmt.Sprintf("invalid glob %q", entry))
			}
			continue
		}
		path := entry
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			add(field, fmt.Sprintf("path not found at %q", entry))
		}
	}

	if cfg.Results.Format == "" {
		add("results.format", "is required")
	} else if _, err := results.ParseFormat(cfg.Results.Format); err != nil {
		add("results.format", fmt.Sprintf("unsupported format %q", cfg.Results.Format))
	}
	if len(cfg.Results.Files) == 0 {
		add("results.files", "must include at least one entry")
	}
	if cfg.SystemUnderTest.Version != "" && cfg.SystemUnderTest.Name == "" {
		add("system_under_test.name", "is required when a version is set")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ResolvePaths joins relative paths onto baseDir.
func ResolvePaths(baseDir string, paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		resolved = append(resolved, filepath.Clean(path))
	}
	return resolved
}
