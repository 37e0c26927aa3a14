// Package model holds the parsed feature tree that execution results are
// correlated against.
package model

// Feature is a named group of scenarios and scenario outlines.
type Feature struct {
	Name        string
	Description string
	Tags        []string
	Path        string
	Line        int
	Scenarios   []*Scenario
	Outlines    []*ScenarioOutline
}

// Scenario is a single named test case within a feature.
type Scenario struct {
	Name    string
	Feature *Feature
	Tags    []string
	Line    int
}

// ScenarioOutline is a parameterized scenario instantiated by example rows.
type ScenarioOutline struct {
	Name     string
	Feature  *Feature
	Tags     []string
	Line     int
	Examples []*Examples
}

// Examples is one example table of an outline.
type Examples struct {
	Name   string
	Header []string
	Rows   []ExampleRow
}

// ExampleRow is one ordered tuple of parameter values.
type ExampleRow struct {
	Values []string
	Line   int
}

// AddScenario appends a scenario owned by f.
func (f *Feature) AddScenario(name string, line int, tags ...string) *Scenario {
	scenario := &Scenario{Name: name, Feature: f, Tags: tags, Line: line}
	f.Scenarios = append(f.Scenarios, scenario)
	return scenario
}

// AddOutline appends a scenario outline owned by f.
func (f *Feature) AddOutline(name string, line int, tags ...string) *ScenarioOutline {
	outline := &ScenarioOutline{Name: name, Feature: f, Tags: tags, Line: line}
	f.Outlines = append(f.Outlines, outline)
	return outline
}

// FeatureName returns the owning feature name, or "" when unowned.
func (s *Scenario) FeatureName() string {
	if s == nil || s.Feature == nil {
		return ""
	}
	return s.Feature.Name
}

// FeatureName returns the owning feature name, or "" when unowned.
func (o *ScenarioOutline) FeatureName() string {
	if o == nil || o.Feature == nil {
		return ""
	}
	return o.Feature.Name
}

// Rows flattens every example table in declaration order.
func (o *ScenarioOutline) Rows() []ExampleRow {
	if o == nil {
		return nil
	}
	rows := make([]ExampleRow, 0)
	for _, examples := range o.Examples {
		if examples == nil {
			continue
		}
		rows = append(rows, examples.Rows...)
	}
	return rows
}
