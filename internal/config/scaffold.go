package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
language: en
features:
  - features
results:
  format: nunit3
  files:
    - TestResult.xml
  case_insensitive: false
system_under_test:
  name: ""
  version: ""
`

// Scaffold writes a starter config file, refusing to overwrite one.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
