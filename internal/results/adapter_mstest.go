package results

import (
	"io"
	"strings"
)

type trxRun struct {
	Name        string          `xml:"name,attr"`
	Results     []trxResult     `xml:"Results>UnitTestResult"`
	Definitions []trxDefinition `xml:"TestDefinitions>UnitTest"`
}

type trxResult struct {
	TestID   string      `xml:"testId,attr"`
	TestName string      `xml:"testName,attr"`
	Outcome  string      `xml:"outcome,attr"`
	Inner    []trxResult `xml:"InnerResults>UnitTestResult"`
}

type trxDefinition struct {
	ID          string        `xml:"id,attr"`
	Name        string        `xml:"name,attr"`
	Description string        `xml:"Description"`
	Properties  []trxProperty `xml:"Properties>Property"`
	Method      struct {
		ClassName string `xml:"className,attr"`
	} `xml:"TestMethod"`
}

type trxProperty struct {
	Key   string `xml:"Key"`
	Value string `xml:"Value"`
}

func parseMSTest(r io.Reader) (*Node, error) {
	var run trxRun
	if _, err := decodeDocument(r, map[string]any{"TestRun": &run}); err != nil {
		return nil, err
	}

	resultsByID := make(map[string][]trxResult)
	for _, result := range run.Results {
		resultsByID[result.TestID] = append(resultsByID[result.TestID], result)
	}

	groups := newFeatureGroups()
	for _, definition := range run.Definitions {
		feature := firstNonEmpty(definition.property("FeatureTitle"), definition.Method.ClassName)
		name := firstNonEmpty(definition.Description, definition.Name)
		results := resultsByID[definition.ID]
		if len(results) == 0 {
			groups.add(feature, newNode(name, definition.Name, NotExecuted))
			continue
		}
		for _, result := range results {
			for _, leaf := range result.leaves() {
				groups.add(feature, newNode(name, firstNonEmpty(leaf.TestName, definition.Name), leaf.result()))
			}
		}
	}

	root := newNode(run.Name, "", NotExecuted)
	root.Children = groups.nodes()
	return root, nil
}

func (d trxDefinition) property(key string) string {
	for _, property := range d.Properties {
		if strings.EqualFold(strings.TrimSpace(property.Key), key) {
			return property.Value
		}
	}
	return ""
}

// leaves expands data-driven results into their per-row inner results.
func (r trxResult) leaves() []trxResult {
	if len(r.Inner) == 0 {
		return []trxResult{r}
	}
	leaves := make([]trxResult, 0, len(r.Inner))
	for _, inner := range r.Inner {
		leaves = append(leaves, inner.leaves()...)
	}
	return leaves
}

func (r trxResult) result() TestResult {
	switch strings.ToLower(strings.TrimSpace(r.Outcome)) {
	case "passed":
		return Passed
	case "failed", "error", "timeout", "aborted":
		return Failed
	default:
		return NotExecuted
	}
}
