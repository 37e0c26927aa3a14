package results

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureBuilders(t *testing.T) {
	tests := []struct {
		name    string
		builder SignatureBuilder
		values  []string
		want    string
	}{
		{name: "nunit", builder: NUnitSignatureBuilder{}, values: []string{"40", "50", "90"}, want: `("40","50","90"`},
		{name: "nunit backslashes", builder: NUnitSignatureBuilder{}, values: []string{`c:\Temp\`}, want: `("c:\\Temp\\"`},
		{name: "nunit quotes", builder: NUnitSignatureBuilder{}, values: []string{`say "hi"`}, want: `("say \"hi\""`},
		{name: "nunit control characters", builder: NUnitSignatureBuilder{}, values: []string{"a\tb\n"}, want: `("a\tb\n"`},
		{name: "xunit", builder: XUnitSignatureBuilder{}, values: []string{"40", "50"}, want: `("40", "50"`},
		{name: "junit", builder: JUnitSignatureBuilder{}, values: []string{"40", "50"}, want: `(40,50)`},
		{name: "junit reserved", builder: JUnitSignatureBuilder{}, values: []string{`a,b`, `(c)`, `d\`}, want: `(a\,b,\(c\),d\\)`},
		{name: "mstest", builder: MSTestSignatureBuilder{}, values: []string{`c:\Temp\`, "1"}, want: ` (c:\Temp\,1)`},
		{name: "func", builder: SignatureBuilderFunc(func(values []string) string { return strings.Join(values, "|") }), values: []string{"a", "b"}, want: "a|b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.builder.Build(tt.values))
		})
	}
}

func TestFormatSignatureBuilder(t *testing.T) {
	for _, format := range Formats() {
		assert.NotNil(t, format.SignatureBuilder(), format.String())
	}
	assert.Nil(t, Format(0).SignatureBuilder())
}

// A signature must locate its case even when values carry characters the
// framework escapes in case names.
func TestSignatureRoundTripsReservedCharacters(t *testing.T) {
	values := []string{`c:\Temp\`, `"quoted"`, `a,b`}

	t.Run("nunit", func(t *testing.T) {
		name := `Ns.Feature.Outline("c:\\Temp\\","\"quoted\"","a,b",null)`
		assert.Contains(t, name, NUnitSignatureBuilder{}.Build(values))
	})
	t.Run("xunit", func(t *testing.T) {
		name := xunitFullName(`Ns.Feature.Outline(path: "c:\\Temp\\", text: "\"quoted\"", csv: "a,b", exampleTags: [])`)
		assert.Contains(t, name, XUnitSignatureBuilder{}.Build(values))
	})
	t.Run("junit", func(t *testing.T) {
		name := "Outline" + JUnitSignatureBuilder{}.Build(values)
		require.Equal(t, "Outline", junitBaseName(name))
		assert.Contains(t, name, JUnitSignatureBuilder{}.Build(values))
	})
	t.Run("mstest", func(t *testing.T) {
		name := `Outline (c:\Temp\,"quoted",a,b)`
		assert.Contains(t, name, MSTestSignatureBuilder{}.Build(values))
	})
}

func TestNUnitSignatureDoesNotMatchLongerValue(t *testing.T) {
	signature := NUnitSignatureBuilder{}.Build([]string{"pass_1"})
	assert.NotContains(t, `Outline("pass_10",null)`, signature)
	assert.Contains(t, `Outline("pass_1",null)`, signature)
}
