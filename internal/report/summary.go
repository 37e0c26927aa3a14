package report

import "fmt"

// Counts tallies verdicts.
type Counts struct {
	Passed       int `json:"passed"`
	Failed       int `json:"failed"`
	Inconclusive int `json:"inconclusive"`
}

// Total returns the number of counted verdicts.
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Inconclusive
}

// PassRate returns the passed share of all verdicts, or 0 when empty.
func (c Counts) PassRate() float64 {
	if c.Total() == 0 {
		return 0
	}
	return float64(c.Passed) / float64(c.Total())
}

func (c *Counts) add(result string) {
	switch result {
	case "passed":
		c.Passed++
	case "failed":
		c.Failed++
	default:
		c.Inconclusive++
	}
}

// Summary counts verdicts per level of the tree.
type Summary struct {
	Features  Counts `json:"features"`
	Scenarios Counts `json:"scenarios"`
	Outlines  Counts `json:"outlines"`
	Examples  Counts `json:"examples"`
}

func summarize(features []FeatureResult) Summary {
	var summary Summary
	for _, feature := range features {
		summary.Features.add(feature.Result)
		for _, scenario := range feature.Scenarios {
			summary.Scenarios.add(scenario.Result)
		}
		for _, outline := range feature.Outlines {
			summary.Outlines.add(outline.Result)
			for _, example := range outline.Examples {
				summary.Examples.add(example.Result)
			}
		}
	}
	return summary
}

// formatPassRate returns a percentage string for report output.
func formatPassRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate*100)
}
