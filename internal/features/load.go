package features

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pickles/internal/model"
)

// Load expands the configured feature entries and parses every feature file
// found, in path order.
func Load(repoRoot string, entries []string, language string) ([]*model.Feature, error) {
	paths, err := ExpandFeaturePaths(repoRoot, entries)
	if err != nil {
		return nil, err
	}
	features := make([]*model.Feature, 0, len(paths))
	for _, path := range paths {
		feature, err := ParseFeatureFile(path, language)
		if err != nil {
			return nil, err
		}
		features = append(features, feature)
	}
	return features, nil
}

// ExpandFeaturePaths expands directories and globs into feature file paths.
func ExpandFeaturePaths(repoRoot string, entries []string) ([]string, error) {
	paths := make([]string, 0)
	seen := make(map[string]struct{})
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		resolved := resolvePath(repoRoot, entry)
		if hasGlob(entry) {
			matches, err := filepath.Glob(resolved)
			if err != nil {
				return nil, fmt.Errorf("expand glob %q: %w", entry, err)
			}
			for _, match := range matches {
				paths = appendUnique(paths, seen, match)
			}
			continue
		}
		info, err := os.Stat(resolved)
		if err != nil {
			return nil, fmt.Errorf("stat feature path %q: %w", entry, err)
		}
		if info.IsDir() {
			dirPaths, err := collectFeatureFiles(resolved)
			if err != nil {
				return nil, err
			}
			for _, path := range dirPaths {
				paths = appendUnique(paths, seen, path)
			}
			continue
		}
		paths = appendUnique(paths, seen, resolved)
	}
	sort.Strings(paths)
	return paths, nil
}

// resolvePath resolves a repo-relative path.
func resolvePath(repoRoot, path string) string {
	if filepath.IsAbs(path) || repoRoot == "" {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(repoRoot, path))
}

func collectFeatureFiles(root string) ([]string, error) {
	paths := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.HasSuffix(entry.Name(), ".feature") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk feature root %q: %w", root, err)
	}
	return paths, nil
}

func appendUnique(paths []string, seen map[string]struct{}, path string) []string {
	normalized := filepath.Clean(path)
	if _, ok := seen[normalized]; ok {
		return paths
	}
	seen[normalized] = struct{}{}
	return append(paths, normalized)
}

// hasGlob reports whether a path includes glob characters.
func hasGlob(value string) bool {
	return strings.ContainsAny(value, "*?[]")
}
