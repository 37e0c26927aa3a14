package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveNoColor decides whether text output should be plain.
func resolveNoColor(mode string, stdout io.Writer) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	switch normalized {
	case "auto":
		if _, set := os.LookupEnv("NO_COLOR"); set {
			return true, nil
		}
		return !isTerminal(stdout), nil
	case "always":
		return false, nil
	case "never":
		return true, nil
	default:
		return false, fmt.Errorf("invalid color mode %q (expected auto|always|never)", mode)
	}
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

// newLogger writes text logs to stderr; verbose lowers the level to debug.
func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}
