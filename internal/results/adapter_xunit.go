package results

import (
	"io"
	"strings"
)

type xunitAssemblies struct {
	Assemblies []xunitAssembly `xml:"assembly"`
}

type xunitAssembly struct {
	Name        string           `xml:"name,attr"`
	Collections []xunitContainer `xml:"collection"`
	Classes     []xunitContainer `xml:"class"`
}

// xunitContainer is a v2 <collection> or a v1 <class>.
type xunitContainer struct {
	Name  string      `xml:"name,attr"`
	Tests []xunitTest `xml:"test"`
}

type xunitTest struct {
	Name   string       `xml:"name,attr"`
	Type   string       `xml:"type,attr"`
	Method string       `xml:"method,attr"`
	Result string       `xml:"result,attr"`
	Traits []xunitTrait `xml:"traits>trait"`
}

type xunitTrait struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

func parseXUnit(r io.Reader) (*Node, error) {
	var assemblies xunitAssemblies
	var single xunitAssembly
	rootName, err := decodeDocument(r, map[string]any{
		"assemblies": &assemblies,
		"assembly":   &single,
	})
	if err != nil {
		return nil, err
	}
	if rootName == "assembly" {
		assemblies = xunitAssemblies{Assemblies: []xunitAssembly{single}}
	}

	groups := newFeatureGroups()
	for _, assembly := range assemblies.Assemblies {
		containers := append(append([]xunitContainer{}, assembly.Collections...), assembly.Classes...)
		for _, container := range containers {
			for _, test := range container.Tests {
				feature := firstNonEmpty(test.trait("FeatureTitle"), test.Type, container.Name)
				name := firstNonEmpty(test.trait("Description"), test.Method, test.Name)
				groups.add(feature, newNode(name, xunitFullName(test.Name), test.result()))
			}
		}
	}

	root := newNode("", "", NotExecuted)
	if len(assemblies.Assemblies) == 1 {
		root.Name = assemblies.Assemblies[0].Name
	}
	root.Children = groups.nodes()
	return root, nil
}

func (t xunitTest) trait(name string) string {
	for _, trait := range t.Traits {
		if strings.EqualFold(strings.TrimSpace(trait.Name), name) {
			return trait.Value
		}
	}
	return ""
}

func (t xunitTest) result() TestResult {
	switch strings.ToLower(strings.TrimSpace(t.Result)) {
	case "pass":
		return Passed
	case "fail":
		return Failed
	default:
		return NotExecuted
	}
}

// xunitFullName drops argument labels from an xUnit display name so example
// values can be matched positionally:
//
//	Ns.Feature.Add(a: "40", b: "50", exampleTags: []) -> Ns.Feature.Add("40", "50", [])
func xunitFullName(name string) string {
	open := strings.IndexByte(name, '(')
	if open < 0 || !strings.HasSuffix(name, ")") {
		return name
	}
	var out strings.Builder
	out.Grow(len(name))
	out.WriteString(name[:open+1])

	args := name[open+1:]
	inString, escaped, argStart := false, false, true
	for i := 0; i < len(args); i++ {
		ch := args[i]
		if argStart && !inString {
			for i < len(args) && args[i] == ' ' {
				out.WriteByte(' ')
				i++
			}
			if skip := argumentLabel(args[i:]); skip > 0 {
				i += skip - 1
				argStart = false
				continue
			}
			if i >= len(args) {
				break
			}
			ch = args[i]
			argStart = false
		}
		out.WriteByte(ch)
		switch {
		case escaped:
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case !inString && ch == ',':
			argStart = true
		}
	}
	return out.String()
}

// argumentLabel returns the length of a leading "ident: " label, or 0.
func argumentLabel(s string) int {
	i := 0
	for i < len(s) && (s[i] == '_' || isASCIILetter(s[i]) || (i > 0 && s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 || i+1 >= len(s) || s[i] != ':' || s[i+1] != ' ' {
		return 0
	}
	return i + 2
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
