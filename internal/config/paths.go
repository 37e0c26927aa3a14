package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config path constants used by the CLI and loaders.
const (
	ConfigDirName  = ".pickles"
	ConfigFileName = "config.yml"
)

// configFileNames are tried in order inside the config directory.
var configFileNames = []string{ConfigFileName, "config.yaml"}

// ConfigDir returns the .pickles directory under the repo root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns the default config file path under the repo root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// RepoRootFromConfigPath derives the repo root from a config file path.
func RepoRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// FindConfigPath searches upward from startDir, or the working directory,
// for the nearest .pickles directory holding a config file.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	start := dir

	for {
		path, found, err := configFileIn(ConfigDir(dir))
		if err != nil || found {
			return path, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or parent directories", filepath.Join(ConfigDirName, ConfigFileName), start)
		}
		dir = parent
	}
}

// configFileIn looks for a config file in configDir. A config directory
// without a config file is an error so a stray .pickles is not skipped.
func configFileIn(configDir string) (string, bool, error) {
	info, err := os.Stat(configDir)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("stat config dir %q: %w", configDir, err)
	}
	if !info.IsDir() {
		return "", false, nil
	}
	for _, name := range configFileNames {
		path := filepath.Join(configDir, name)
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf("config path %q is a directory", path)
			}
			return path, true, nil
		}
		if !os.IsNotExist(err) {
			return "", false, fmt.Errorf("stat config path %q: %w", path, err)
		}
	}
	return "", false, fmt.Errorf("found %q but %s is missing", configDir, ConfigFileName)
}
