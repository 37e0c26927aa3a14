package results

import (
	"encoding/xml"
	"io"
	"strings"
)

type nunit2Document struct {
	Name   string          `xml:"name,attr"`
	Suites []nunit2Element `xml:"test-suite"`
}

// nunit2Element is either a test-suite or a test-case; Results keeps the
// children of both kinds in document order.
type nunit2Element struct {
	XMLName     xml.Name
	Type        string          `xml:"type,attr"`
	Name        string          `xml:"name,attr"`
	Description string          `xml:"description,attr"`
	Executed    string          `xml:"executed,attr"`
	Result      string          `xml:"result,attr"`
	Success     string          `xml:"success,attr"`
	Results     *nunit2Children `xml:"results"`
}

type nunit2Children struct {
	Items []nunit2Element `xml:",any"`
}

func parseNUnit2(r io.Reader) (*Node, error) {
	var doc nunit2Document
	if _, err := decodeDocument(r, map[string]any{"test-results": &doc}); err != nil {
		return nil, err
	}
	root := newNode(doc.Name, "", NotExecuted)
	for _, item := range doc.Suites {
		root.Children = append(root.Children, nunit2Features(item)...)
	}
	return root, nil
}

func (e nunit2Element) children() []nunit2Element {
	if e.Results == nil {
		return nil
	}
	return e.Results.Items
}

func (e nunit2Element) isSuite() bool {
	return e.XMLName.Local == "test-suite"
}

func (e nunit2Element) isCase() bool {
	return e.XMLName.Local == "test-case"
}

// isFixture reports whether the suite maps to a feature: a TestFixture, or an
// untyped suite holding test cases directly.
func (e nunit2Element) isFixture() bool {
	if strings.EqualFold(e.Type, "TestFixture") {
		return true
	}
	if e.Type != "" {
		return false
	}
	for _, child := range e.children() {
		if child.isCase() {
			return true
		}
	}
	return false
}

// nunit2Features finds fixtures anywhere below a suite.
func nunit2Features(e nunit2Element) []*Node {
	if !e.isSuite() {
		return nil
	}
	if e.isFixture() {
		return []*Node{nunit2Fixture(e)}
	}
	features := make([]*Node, 0)
	for _, child := range e.children() {
		features = append(features, nunit2Features(child)...)
	}
	return features
}

func nunit2Fixture(e nunit2Element) *Node {
	feature := e.node()
	for _, child := range e.children() {
		switch {
		case child.isCase():
			feature.Children = append(feature.Children, child.node())
		case child.isSuite() && strings.EqualFold(child.Type, "ParameterizedTest"):
			outline := child.node()
			for _, example := range child.children() {
				if example.isCase() {
					outline.Children = append(outline.Children, example.node())
				}
			}
			feature.Children = append(feature.Children, outline)
		}
	}
	return feature
}

func (e nunit2Element) node() *Node {
	return newNode(firstNonEmpty(e.Description, e.Name), e.Name, e.result())
}

var nunit2NotRun = map[string]bool{
	"ignored":      true,
	"skipped":      true,
	"notrunnable":  true,
	"notrun":       true,
	"inconclusive": true,
}

func (e nunit2Element) result() TestResult {
	executed, ok := parseFlag(e.Executed)
	if !ok || !executed || nunit2NotRun[strings.ToLower(strings.TrimSpace(e.Result))] {
		return NotExecuted
	}
	success, ok := parseFlag(e.Success)
	if !ok {
		return NotExecuted
	}
	return TestResult{Executed: true, Successful: success}
}
