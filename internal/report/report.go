// Package report decorates parsed features with correlated test results and
// renders the outcome.
package report

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pickles/internal/model"
	"pickles/internal/results"
)

// Correlator answers the result queries a report is built from.
type Correlator interface {
	FeatureResult(feature *model.Feature) results.TestResult
	ScenarioResult(scenario *model.Scenario) results.TestResult
	ScenarioOutlineResult(outline *model.ScenarioOutline) results.TestResult
	ExampleResult(outline *model.ScenarioOutline, values []string) (results.TestResult, error)
}

// Report is a feature tree decorated with verdicts.
type Report struct {
	RunID           string           `json:"run_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	SystemUnderTest *SystemUnderTest `json:"system_under_test,omitempty"`
	Format          string           `json:"format,omitempty"`
	Sources         []string         `json:"sources,omitempty"`
	Summary         Summary          `json:"summary"`
	Features        []FeatureResult  `json:"features"`
}

// SystemUnderTest names the product a report was produced for.
type SystemUnderTest struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// String joins name and version for display.
func (s SystemUnderTest) String() string {
	if s.Version == "" {
		return s.Name
	}
	return s.Name + " " + s.Version
}

// FeatureResult is a feature with its verdict and decorated children.
// Scenarios and Outlines keep their source lines so renderers can restore
// document order.
type FeatureResult struct {
	Name      string           `json:"name"`
	Path      string           `json:"path,omitempty"`
	Result    string           `json:"result"`
	Scenarios []ScenarioResult `json:"scenarios,omitempty"`
	Outlines  []OutlineResult  `json:"outlines,omitempty"`
}

// ScenarioResult is one scenario's verdict.
type ScenarioResult struct {
	Name   string `json:"name"`
	Line   int    `json:"line,omitempty"`
	Result string `json:"result"`
}

// OutlineResult is an outline's rolled-up verdict with one entry per example
// row.
type OutlineResult struct {
	Name     string          `json:"name"`
	Line     int             `json:"line,omitempty"`
	Result   string          `json:"result"`
	Examples []ExampleResult `json:"examples,omitempty"`
}

// ExampleResult is the verdict of one example row.
type ExampleResult struct {
	Values []string `json:"values"`
	Line   int      `json:"line,omitempty"`
	Result string   `json:"result"`
}

// Options carries report metadata that the correlator does not expose.
type Options struct {
	Format  string
	Sources []string

	// SystemUnderTest is reported only when its Name is set.
	SystemUnderTest SystemUnderTest
	Now             func() time.Time
}

// Build queries the correlator for every feature, scenario, outline and
// example. Features are evaluated concurrently; the output keeps input order.
func Build(ctx context.Context, correlator Correlator, features []*model.Feature, opts Options) (Report, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	decorated := make([]FeatureResult, len(features))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, feature := range features {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := buildFeature(correlator, feature)
			if err != nil {
				return err
			}
			decorated[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: now().UTC(),
		Format:      opts.Format,
		Sources:     opts.Sources,
		Features:    decorated,
	}
	if opts.SystemUnderTest.Name != "" {
		sut := opts.SystemUnderTest
		report.SystemUnderTest = &sut
	}
	report.Summary = summarize(decorated)
	return report, nil
}

func buildFeature(correlator Correlator, feature *model.Feature) (FeatureResult, error) {
	result := FeatureResult{
		Name:   feature.Name,
		Path:   feature.Path,
		Result: correlator.FeatureResult(feature).String(),
	}
	for _, scenario := range feature.Scenarios {
		result.Scenarios = append(result.Scenarios, ScenarioResult{
			Name:   scenario.Name,
			Line:   scenario.Line,
			Result: correlator.ScenarioResult(scenario).String(),
		})
	}
	for _, outline := range feature.Outlines {
		decorated := OutlineResult{
			Name:   outline.Name,
			Line:   outline.Line,
			Result: correlator.ScenarioOutlineResult(outline).String(),
		}
		for _, row := range outline.Rows() {
			verdict, err := correlator.ExampleResult(outline, row.Values)
			if err != nil {
				return FeatureResult{}, err
			}
			decorated.Examples = append(decorated.Examples, ExampleResult{
				Values: row.Values,
				Line:   row.Line,
				Result: verdict.String(),
			})
		}
		result.Outlines = append(result.Outlines, decorated)
	}
	return result, nil
}
