package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"pickles/internal/results"
)

// runFormats builds the handler for the formats command.
func runFormats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		for _, format := range results.Formats() {
			line := format.String()
			if aliases := format.Aliases(); len(aliases) > 0 {
				line = fmt.Sprintf("%-8s (also: %s)", line, strings.Join(aliases, ", "))
			}
			fmt.Fprintln(stdout, line)
		}
		return ExitOK
	}
}
