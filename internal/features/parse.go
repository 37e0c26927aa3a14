// Package features loads Gherkin feature files into the model tree that test
// results are correlated against.
package features

import (
	"fmt"
	"io"
	"os"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"

	"pickles/internal/model"
)

// DefaultLanguage is the Gherkin dialect used when none is configured.
const DefaultLanguage = "en"

// KnownLanguage reports whether a Gherkin dialect exists for the language
// code.
func KnownLanguage(language string) bool {
	return gherkin.DialectsBuiltin().GetDialect(language) != nil
}

// ParseFeatureFile parses one feature file written in the given dialect.
func ParseFeatureFile(path, language string) (*model.Feature, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read feature: %w", err)
	}
	defer file.Close()

	feature, err := ParseFeature(file, language)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	feature.Path = path
	return feature, nil
}

// ParseFeature parses a feature document. An empty language selects the
// default dialect; a "# language:" header in the document still wins.
func ParseFeature(r io.Reader, language string) (*model.Feature, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}
	if !KnownLanguage(language) {
		return nil, fmt.Errorf("unknown gherkin language %q", language)
	}
	doc, err := gherkin.ParseGherkinDocumentForLanguage(r, language, (&messages.Incrementing{}).NewId)
	if err != nil {
		return nil, fmt.Errorf("parse feature: %w", err)
	}
	if doc.Feature == nil {
		return nil, fmt.Errorf("missing feature")
	}
	return buildFeature(doc.Feature), nil
}

func buildFeature(source *messages.Feature) *model.Feature {
	feature := &model.Feature{
		Name:        strings.TrimSpace(source.Name),
		Description: strings.TrimSpace(source.Description),
		Tags:        tagNames(source.Tags),
		Line:        lineFromLocation(source.Location),
	}
	for _, scenario := range collectScenarios(source) {
		name := strings.TrimSpace(scenario.Name)
		line := lineFromLocation(scenario.Location)
		tags := tagNames(scenario.Tags)
		if len(scenario.Examples) == 0 {
			feature.AddScenario(name, line, tags...)
			continue
		}
		outline := feature.AddOutline(name, line, tags...)
		for _, table := range scenario.Examples {
			if table == nil {
				continue
			}
			outline.Examples = append(outline.Examples, buildExamples(table))
		}
	}
	return feature
}

func buildExamples(table *messages.Examples) *model.Examples {
	examples := &model.Examples{Name: strings.TrimSpace(table.Name)}
	if table.TableHeader != nil {
		examples.Header = cellValues(table.TableHeader.Cells)
	}
	for _, row := range table.TableBody {
		if row == nil {
			continue
		}
		examples.Rows = append(examples.Rows, model.ExampleRow{
			Values: cellValues(row.Cells),
			Line:   lineFromLocation(row.Location),
		})
	}
	return examples
}

// collectScenarios flattens scenarios from a feature and its rules.
func collectScenarios(feature *messages.Feature) []*messages.Scenario {
	if feature == nil {
		return nil
	}
	scenarios := make([]*messages.Scenario, 0)
	for _, child := range feature.Children {
		if child == nil {
			continue
		}
		if child.Scenario != nil {
			scenarios = append(scenarios, child.Scenario)
		}
		if child.Rule != nil {
			for _, ruleChild := range child.Rule.Children {
				if ruleChild != nil && ruleChild.Scenario != nil {
					scenarios = append(scenarios, ruleChild.Scenario)
				}
			}
		}
	}
	return scenarios
}

func cellValues(cells []*messages.TableCell) []string {
	values := make([]string, 0, len(cells))
	for _, cell := range cells {
		if cell == nil {
			values = append(values, "")
			continue
		}
		values = append(values, cell.Value)
	}
	return values
}

func tagNames(tags []*messages.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		names = append(names, strings.TrimSpace(tag.Name))
	}
	return names
}

// lineFromLocation extracts the line number from a Gherkin location.
func lineFromLocation(location *messages.Location) int {
	if location == nil {
		return 0
	}
	return int(location.Line)
}
