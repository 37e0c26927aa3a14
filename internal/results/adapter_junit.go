package results

import (
	"io"
	"strings"
	"unicode"
)

type junitSuites struct {
	Name   string       `xml:"name,attr"`
	Suites []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    string          `xml:"tests,attr"`
	Failures string          `xml:"failures,attr"`
	Errors   string          `xml:"errors,attr"`
	Skipped  string          `xml:"skipped,attr"`
	Suites   []junitSuite    `xml:"testsuite"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string    `xml:"name,attr"`
	ClassName string    `xml:"classname,attr"`
	Status    string    `xml:"status,attr"`
	Failure   *struct{} `xml:"failure"`
	Error     *struct{} `xml:"error"`
	Skipped   *struct{} `xml:"skipped"`
}

func parseJUnit(r io.Reader) (*Node, error) {
	var suites junitSuites
	var single junitSuite
	rootName, err := decodeDocument(r, map[string]any{
		"testsuites": &suites,
		"testsuite":  &single,
	})
	if err != nil {
		return nil, err
	}
	if rootName == "testsuite" {
		suites = junitSuites{Suites: []junitSuite{single}}
	}
	root := newNode(suites.Name, "", NotExecuted)
	for _, suite := range suites.Suites {
		root.Children = append(root.Children, junitFeatures(suite)...)
	}
	return root, nil
}

// junitFeatures flattens nested suites; every suite that holds test cases is a
// feature.
func junitFeatures(suite junitSuite) []*Node {
	features := make([]*Node, 0)
	if len(suite.Cases) > 0 {
		feature := newNode(firstNonEmpty(suite.Name, suite.Cases[0].ClassName), "", suite.result())
		for _, testCase := range suite.Cases {
			feature.Children = append(feature.Children, testCase.node())
		}
		features = append(features, feature)
	}
	for _, nested := range suite.Suites {
		features = append(features, junitFeatures(nested)...)
	}
	return features
}

func (s junitSuite) result() TestResult {
	tests, ok := parseCount(s.Tests)
	if !ok {
		return NotExecuted
	}
	counts := make([]int, 0, 3)
	for _, value := range []string{s.Failures, s.Errors, s.Skipped} {
		if strings.TrimSpace(value) == "" {
			counts = append(counts, 0)
			continue
		}
		count, ok := parseCount(value)
		if !ok {
			return NotExecuted
		}
		counts = append(counts, count)
	}
	failures, errs, skipped := counts[0], counts[1], counts[2]
	switch {
	case failures+errs > 0:
		return Failed
	case skipped > 0:
		return Inconclusive
	case tests > 0:
		return Passed
	default:
		return NotExecuted
	}
}

func (c junitTestCase) node() *Node {
	name := strings.TrimSpace(c.Name)
	return newNode(junitBaseName(name), name, c.result())
}

// result maps a test case to a verdict. JUnit has no explicit pass marker, so
// a named case passes when it carries no failure, error or skipped child. A
// status attribute, which some runners emit, takes precedence.
func (c junitTestCase) result() TestResult {
	if strings.TrimSpace(c.Name) == "" {
		return NotExecuted
	}
	switch strings.ToLower(strings.TrimSpace(c.Status)) {
	case "passed", "pass", "success":
		return Passed
	case "failed", "fail", "failure", "error":
		return Failed
	case "skipped", "skip", "disabled", "ignored":
		return NotExecuted
	}
	switch {
	case c.Skipped != nil:
		return NotExecuted
	case c.Failure != nil, c.Error != nil:
		return Failed
	default:
		return Passed
	}
}

// junitBaseName strips a trailing parameter list from a parameterized case
// name: "Adding numbers(1,2)" becomes "Adding numbers". The list must be
// balanced and attached to the preceding word, so "Add numbers (slow)" is a
// plain name.
func junitBaseName(name string) string {
	if !strings.HasSuffix(name, ")") || escapedAt(name, len(name)-1) {
		return name
	}
	depth := 0
	for i := len(name) - 1; i >= 0; i-- {
		if escapedAt(name, i) {
			continue
		}
		switch name[i] {
		case ')':
			depth++
		case '(':
			depth--
		}
		if depth != 0 {
			continue
		}
		if i == 0 || unicode.IsSpace(rune(name[i-1])) {
			return name
		}
		return name[:i]
	}
	return name
}

// escapedAt reports whether the byte at i is preceded by an odd number of
// backslashes.
func escapedAt(s string, i int) bool {
	count := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		count++
	}
	return count%2 == 1
}
