package results

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Format names a supported report schema. The set is closed; each value maps
// to exactly one adapter.
type Format int

const (
	NUnit2 Format = iota + 1
	NUnit3
	JUnit
	MSTest
	XUnit
)

var formatNames = map[Format]string{
	NUnit2: "nunit2",
	NUnit3: "nunit3",
	JUnit:  "junit",
	MSTest: "mstest",
	XUnit:  "xunit",
}

var formatAliases = map[string]Format{
	"nunit":  NUnit2,
	"xunit2": XUnit,
	"trx":    MSTest,
	"vstest": MSTest,
}

// Formats lists the supported formats in declaration order.
func Formats() []Format {
	return []Format{NUnit2, NUnit3, JUnit, MSTest, XUnit}
}

// ParseFormat resolves a format name or alias, ignoring case.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for format, formatName := range formatNames {
		if formatName == key {
			return format, nil
		}
	}
	if format, ok := formatAliases[key]; ok {
		return format, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// HasOutlineNodes reports whether the schema reports a scenario outline as a
// node of its own. Otherwise outline verdicts are rolled up from examples.
func (f Format) HasOutlineNodes() bool {
	return f == NUnit2 || f == NUnit3
}

// SignatureBuilder returns the example signature builder matching the way the
// schema names parameterized cases.
func (f Format) SignatureBuilder() SignatureBuilder {
	switch f {
	case NUnit2, NUnit3:
		return NUnitSignatureBuilder{}
	case JUnit:
		return JUnitSignatureBuilder{}
	case MSTest:
		return MSTestSignatureBuilder{}
	case XUnit:
		return XUnitSignatureBuilder{}
	default:
		return nil
	}
}

func (f Format) adapter() func(r io.Reader) (*Node, error) {
	switch f {
	case NUnit2:
		return parseNUnit2
	case NUnit3:
		return parseNUnit3
	case JUnit:
		return parseJUnit
	case MSTest:
		return parseMSTest
	case XUnit:
		return parseXUnit
	default:
		return nil
	}
}

// Parse reads one report document in the given format. Failures are returned
// as *ParseError.
func Parse(format Format, r io.Reader, source string) (*Node, error) {
	if !format.Valid() {
		return nil, &ParseError{Source: source, Format: format, Err: ErrUnknownFormat}
	}
	root, err := format.adapter()(r)
	if err != nil {
		return nil, &ParseError{Source: source, Format: format, Err: err}
	}
	if root.Name == "" {
		root.Name = source
	}
	if source != "" {
		root.FullName = source
	}
	return root, nil
}

// Aliases lists the alternative names ParseFormat accepts for f.
func (f Format) Aliases() []string {
	aliases := make([]string, 0)
	for alias, format := range formatAliases {
		if format == f {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return aliases
}
