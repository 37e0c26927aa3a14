package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, report Report) error {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	payload = append(payload, '\n')
	_, err = w.Write(payload)
	return err
}

// RenderText writes the decorated feature tree followed by a summary.
func RenderText(w io.Writer, report Report, noColor bool) error {
	var b strings.Builder
	if report.SystemUnderTest != nil {
		b.WriteString(stylize("System under test: "+report.SystemUnderTest.String(), noColor, lipgloss.Color("33")) + "\n\n")
	}
	for _, feature := range report.Features {
		line := marker(feature.Result, noColor) + " Feature: " + feature.Name
		if feature.Path != "" {
			line += stylize("  "+feature.Path, noColor, lipgloss.Color("244"))
		}
		b.WriteString(line + "\n")
		writeChildren(&b, feature, noColor)
	}
	if len(report.Features) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(renderSummary(report.Summary, noColor) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// writeChildren interleaves scenarios and outlines by source line.
func writeChildren(b *strings.Builder, feature FeatureResult, noColor bool) {
	scenarios, outlines := feature.Scenarios, feature.Outlines
	for len(scenarios) > 0 || len(outlines) > 0 {
		if len(outlines) == 0 || (len(scenarios) > 0 && scenarios[0].Line <= outlines[0].Line) {
			scenario := scenarios[0]
			scenarios = scenarios[1:]
			b.WriteString("  " + marker(scenario.Result, noColor) + " Scenario: " + scenario.Name + "\n")
			continue
		}
		outline := outlines[0]
		outlines = outlines[1:]
		b.WriteString("  " + marker(outline.Result, noColor) + " Scenario Outline: " + outline.Name + "\n")
		for _, example := range outline.Examples {
			b.WriteString("    " + marker(example.Result, noColor) + " | " + strings.Join(example.Values, " | ") + " |\n")
		}
	}
}

func renderSummary(summary Summary, noColor bool) string {
	line := "Features: " + formatCounts(summary.Features) +
		" | Scenarios: " + formatCounts(summary.Scenarios) +
		" | Examples: " + formatCounts(summary.Examples)
	executable := Counts{
		Passed:       summary.Scenarios.Passed + summary.Examples.Passed,
		Failed:       summary.Scenarios.Failed + summary.Examples.Failed,
		Inconclusive: summary.Scenarios.Inconclusive + summary.Examples.Inconclusive,
	}
	line += " | Pass rate: " + formatPassRate(executable.PassRate()) + "%"
	return stylize(line, noColor, lipgloss.Color("242"))
}

func formatCounts(counts Counts) string {
	return fmt.Sprintf("%d passed, %d failed, %d inconclusive", counts.Passed, counts.Failed, counts.Inconclusive)
}

// marker renders the verdict symbol for a result.
func marker(result string, noColor bool) string {
	switch result {
	case "passed":
		return stylize("✓", noColor, lipgloss.Color("42"))
	case "failed":
		return stylize("✗", noColor, lipgloss.Color("196"))
	default:
		return stylize("?", noColor, lipgloss.Color("220"))
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
