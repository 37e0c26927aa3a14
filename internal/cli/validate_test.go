package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a config under dir/.pickles and returns its path.
func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	configPath := filepath.Join(dir, ".pickles", "config.yml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

// TestValidateCommandSuccess verifies validate command success path.
func TestValidateCommandSuccess(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "features"), 0o755); err != nil {
		t.Fatalf("create features dir: %v", err)
	}
	configPath := writeConfig(t, dir, `version: 1
features: [features]
results:
  format: junit
  files: [build/junit.xml]
`)

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	if !strings.Contains(out.String(), "Config OK") {
		t.Fatalf("expected success message, got %q", out.String())
	}
}

// TestValidateCommandFailure verifies validate command error handling.
func TestValidateCommandFailure(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, `version: 1
results:
  format: cucumber
`)

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	for _, want := range []string{"Validation failed", "features[0]", "results.format", "results.files"} {
		if !strings.Contains(err.String(), want) {
			t.Fatalf("expected %q in stderr, got %q", want, err.String())
		}
	}
}

func TestValidateRejectsExtraArgs(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"validate", "extra"}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "unexpected arguments: extra") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
}

func TestInitCommandScaffoldsConfig(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, ".pickles", "config.yml")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--config", target}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), target) {
		t.Fatalf("expected written path in output, got %q", out.String())
	}
	if _, statErr := os.Stat(target); statErr != nil {
		t.Fatalf("expected config file: %v", statErr)
	}

	out.Reset()
	err.Reset()
	code = Run([]string{"init", "--config", target}, &out, &err)
	if code != ExitError || !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %d %q", code, err.String())
	}
}

func TestFormatsCommand(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"formats"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 formats, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "nunit2") || !strings.Contains(lines[0], "nunit") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(out.String(), "trx, vstest") {
		t.Fatalf("expected mstest aliases, got %q", out.String())
	}
}
