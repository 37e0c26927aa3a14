package features

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const additionFeature = `@math
Feature: Addition
  In order to avoid silly mistakes
  I want to be told the sum of two numbers

  Background:
    Given a calculator

  @smoke
  Scenario: Add two numbers
    Given I have entered 50 into the calculator
    When I press add
    Then the result should be 120 on the screen

  Scenario Outline: Adding several numbers
    Given I have entered <First> into the calculator
    Then the result should be <Result> on the screen

    Examples: small
      | First | Second | Result |
      | 40    | 50     | 90     |

    Examples:
      | First | Second | Result |
      | 60    | 70     | 130    |
      | c:\\Temp\\ | a\|b | x |

  Rule: Negative numbers
    Scenario: Add a negative number
      Given I have entered -1 into the calculator
`

func TestParseFeature(t *testing.T) {
	feature, err := ParseFeature(strings.NewReader(additionFeature), "")
	if err != nil {
		t.Fatalf("parse feature: %v", err)
	}
	if feature.Name != "Addition" {
		t.Fatalf("expected feature name Addition, got %q", feature.Name)
	}
	if !strings.HasPrefix(feature.Description, "In order to avoid silly mistakes") {
		t.Fatalf("unexpected description %q", feature.Description)
	}
	if !reflect.DeepEqual(feature.Tags, []string{"@math"}) {
		t.Fatalf("unexpected feature tags %v", feature.Tags)
	}

	if len(feature.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(feature.Scenarios))
	}
	first := feature.Scenarios[0]
	if first.Name != "Add two numbers" || first.Feature != feature || first.Line != 10 {
		t.Fatalf("unexpected first scenario %+v", first)
	}
	if !reflect.DeepEqual(first.Tags, []string{"@smoke"}) {
		t.Fatalf("unexpected scenario tags %v", first.Tags)
	}
	if feature.Scenarios[1].Name != "Add a negative number" {
		t.Fatalf("expected rule scenario, got %q", feature.Scenarios[1].Name)
	}

	if len(feature.Outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(feature.Outlines))
	}
	outline := feature.Outlines[0]
	if outline.Name != "Adding several numbers" || outline.FeatureName() != "Addition" {
		t.Fatalf("unexpected outline %+v", outline)
	}
	if len(outline.Examples) != 2 || outline.Examples[0].Name != "small" {
		t.Fatalf("unexpected example tables %+v", outline.Examples)
	}
	if !reflect.DeepEqual(outline.Examples[0].Header, []string{"First", "Second", "Result"}) {
		t.Fatalf("unexpected header %v", outline.Examples[0].Header)
	}
	rows := outline.Rows()
	want := [][]string{
		{"40", "50", "90"},
		{"60", "70", "130"},
		{`c:\Temp\`, "a|b", "x"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, row := range rows {
		if !reflect.DeepEqual(row.Values, want[i]) {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], row.Values)
		}
		if row.Line == 0 {
			t.Fatalf("row %d: missing line", i)
		}
	}
}

func TestParseFeatureLanguage(t *testing.T) {
	body := `Fonctionnalité: Addition
  Scénario: Ajouter deux nombres
    Soit une calculatrice
`
	feature, err := ParseFeature(strings.NewReader(body), "fr")
	if err != nil {
		t.Fatalf("parse feature: %v", err)
	}
	if feature.Name != "Addition" || len(feature.Scenarios) != 1 {
		t.Fatalf("unexpected feature %+v", feature)
	}

	// The document header overrides the configured dialect.
	feature, err = ParseFeature(strings.NewReader("# language: fr\n"+body), "en")
	if err != nil {
		t.Fatalf("parse feature with header: %v", err)
	}
	if feature.Scenarios[0].Name != "Ajouter deux nombres" {
		t.Fatalf("unexpected scenario %q", feature.Scenarios[0].Name)
	}

	if _, err := ParseFeature(strings.NewReader(body), "en"); err == nil {
		t.Fatalf("expected error parsing french keywords as english")
	}
	if _, err := ParseFeature(strings.NewReader(body), "klingon-ish"); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}

func TestParseFeatureFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ParseFeatureFile(filepath.Join(dir, "missing.feature"), ""); err == nil {
		t.Fatalf("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.feature")
	if err := os.WriteFile(empty, []byte("# nothing here\n"), 0o644); err != nil {
		t.Fatalf("write feature: %v", err)
	}
	_, err := ParseFeatureFile(empty, "")
	if err == nil || !strings.Contains(err.Error(), "missing feature") {
		t.Fatalf("expected missing feature error, got %v", err)
	}

	path := filepath.Join(dir, "addition.feature")
	if err := os.WriteFile(path, []byte(additionFeature), 0o644); err != nil {
		t.Fatalf("write feature: %v", err)
	}
	feature, err := ParseFeatureFile(path, "")
	if err != nil {
		t.Fatalf("parse feature file: %v", err)
	}
	if feature.Path != path {
		t.Fatalf("expected path %q, got %q", path, feature.Path)
	}
}
