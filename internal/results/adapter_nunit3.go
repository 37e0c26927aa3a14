package results

import (
	"encoding/xml"
	"io"
	"strings"
)

type nunit3Document struct {
	Name   string          `xml:"name,attr"`
	Suites []nunit3Element `xml:"test-suite"`
}

type nunit3Element struct {
	XMLName    xml.Name
	Type       string           `xml:"type,attr"`
	Name       string           `xml:"name,attr"`
	FullName   string           `xml:"fullname,attr"`
	Result     string           `xml:"result,attr"`
	Label      string           `xml:"label,attr"`
	Properties []nunit3Property `xml:"properties>property"`
	Items      []nunit3Element  `xml:",any"`
}

type nunit3Property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

func parseNUnit3(r io.Reader) (*Node, error) {
	var doc nunit3Document
	if _, err := decodeDocument(r, map[string]any{"test-run": &doc}); err != nil {
		return nil, err
	}
	root := newNode(doc.Name, "", NotExecuted)
	for _, suite := range doc.Suites {
		root.Children = append(root.Children, nunit3Features(suite)...)
	}
	return root, nil
}

func (e nunit3Element) isSuite() bool {
	return e.XMLName.Local == "test-suite"
}

func (e nunit3Element) isCase() bool {
	return e.XMLName.Local == "test-case"
}

func (e nunit3Element) property(name string) string {
	for _, property := range e.Properties {
		if strings.EqualFold(property.Name, name) {
			return property.Value
		}
	}
	return ""
}

func nunit3Features(e nunit3Element) []*Node {
	if !e.isSuite() {
		return nil
	}
	if strings.EqualFold(e.Type, "TestFixture") {
		return []*Node{nunit3Fixture(e)}
	}
	features := make([]*Node, 0)
	for _, child := range e.Items {
		features = append(features, nunit3Features(child)...)
	}
	return features
}

func nunit3Fixture(e nunit3Element) *Node {
	feature := e.node()
	for _, child := range e.Items {
		switch {
		case child.isCase():
			feature.Children = append(feature.Children, child.node())
		case child.isSuite() && strings.EqualFold(child.Type, "ParameterizedMethod"):
			outline := child.node()
			for _, example := range child.Items {
				if example.isCase() {
					outline.Children = append(outline.Children, example.node())
				}
			}
			feature.Children = append(feature.Children, outline)
		}
	}
	return feature
}

func (e nunit3Element) node() *Node {
	return newNode(firstNonEmpty(e.property("Description"), e.Name), e.Name, e.result())
}

func (e nunit3Element) result() TestResult {
	switch strings.ToLower(strings.TrimSpace(e.Result)) {
	case "passed":
		return Passed
	case "failed", "warning":
		// Failed:Invalid marks a case NUnit could not run.
		if strings.EqualFold(strings.TrimSpace(e.Label), "Invalid") {
			return NotExecuted
		}
		return Failed
	default:
		return NotExecuted
	}
}
