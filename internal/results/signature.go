package results

import "strings"

// SignatureBuilder renders example parameter values the way a test framework
// embeds them in the name of a parameterized case.
type SignatureBuilder interface {
	Build(values []string) string
}

// SignatureBuilderFunc adapts a function to SignatureBuilder.
type SignatureBuilderFunc func(values []string) string

// Build calls f(values).
func (f SignatureBuilderFunc) Build(values []string) string {
	return f(values)
}

// NUnitSignatureBuilder matches NUnit's argument display, which quotes string
// arguments and escapes them as C# literals: ("40","c:\\Temp\\"
type NUnitSignatureBuilder struct{}

// Build renders the quoted argument prefix.
func (NUnitSignatureBuilder) Build(values []string) string {
	return "(" + joinQuoted(values, ",")
}

// XUnitSignatureBuilder matches xUnit display names once argument labels are
// removed: ("40", "50"
type XUnitSignatureBuilder struct{}

// Build renders the quoted argument prefix.
func (XUnitSignatureBuilder) Build(values []string) string {
	return "(" + joinQuoted(values, ", ")
}

// JUnitSignatureBuilder matches the "Name(v1,v2)" form of parameterized JUnit
// cases, escaping separators with a backslash.
type JUnitSignatureBuilder struct{}

var junitEscaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`, `(`, `\(`, `)`, `\)`)

// Build renders the complete parenthesized argument list.
func (JUnitSignatureBuilder) Build(values []string) string {
	escaped := make([]string, 0, len(values))
	for _, value := range values {
		escaped = append(escaped, junitEscaper.Replace(value))
	}
	return "(" + strings.Join(escaped, ",") + ")"
}

// MSTestSignatureBuilder matches MSTest data row display names,
// "Method (v1,v2)". MSTest does not escape row values.
type MSTestSignatureBuilder struct{}

// Build renders the complete parenthesized argument list.
func (MSTestSignatureBuilder) Build(values []string) string {
	return " (" + strings.Join(values, ",") + ")"
}

var csharpEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\x00", `\0`,
)

func joinQuoted(values []string, sep string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, `"`+csharpEscaper.Replace(value)+`"`)
	}
	return strings.Join(quoted, sep)
}
