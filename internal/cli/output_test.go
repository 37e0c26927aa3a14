package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// TestResolveNoColor verifies color mode decision logic.
func TestResolveNoColor(t *testing.T) {
	cases := []struct {
		name        string
		mode        string
		isTTY       bool
		wantNoColor bool
		wantErr     bool
	}{
		{name: "auto tty", mode: "auto", isTTY: true, wantNoColor: false},
		{name: "auto non-tty", mode: "", isTTY: false, wantNoColor: true},
		{name: "always", mode: "always", isTTY: false, wantNoColor: false},
		{name: "never", mode: "NEVER", isTTY: true, wantNoColor: true},
		{name: "invalid", mode: "sometimes", wantErr: true},
	}

	original := isTerminal
	t.Cleanup(func() { isTerminal = original })
	// Setenv restores the original value once the test ends.
	t.Setenv("NO_COLOR", "1")
	os.Unsetenv("NO_COLOR")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isTerminal = func(_ io.Writer) bool { return tc.isTTY }
			noColor, err := resolveNoColor(tc.mode, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if noColor != tc.wantNoColor {
				t.Fatalf("expected noColor=%v, got %v", tc.wantNoColor, noColor)
			}
		})
	}
}

func TestResolveNoColorHonorsEnv(t *testing.T) {
	original := isTerminal
	t.Cleanup(func() { isTerminal = original })
	isTerminal = func(_ io.Writer) bool { return true }
	t.Setenv("NO_COLOR", "1")

	noColor, err := resolveNoColor("auto", nil)
	if err != nil || !noColor {
		t.Fatalf("expected NO_COLOR to disable color, got %v %v", noColor, err)
	}
	noColor, err = resolveNoColor("always", nil)
	if err != nil || noColor {
		t.Fatalf("expected always to force color, got %v %v", noColor, err)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var quiet, verbose bytes.Buffer
	newLogger(&quiet, false).Debug("hidden")
	newLogger(&verbose, true).Debug("shown", "key", "value")
	if quiet.Len() != 0 {
		t.Fatalf("expected no debug output, got %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "msg=shown") || !strings.Contains(verbose.String(), "key=value") {
		t.Fatalf("unexpected debug output %q", verbose.String())
	}
}
