package results

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newDecoder returns a decoder that accepts BOM-prefixed UTF-8/UTF-16 input
// and legacy single-byte charsets declared in the prolog.
func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	dec.CharsetReader = charsetReader
	return dec
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8", "utf-16", "utf-16le", "utf-16be":
		// Unicode input has been normalized by the BOM transform.
		return input, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// decodeDocument checks the document element against the accepted root names
// and decodes it into the value chosen for that root.
func decodeDocument(r io.Reader, targets map[string]any) (string, error) {
	dec := newDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("empty document: %w", ErrSchemaMismatch)
			}
			return "", err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		target, ok := targets[start.Name.Local]
		if !ok {
			return "", fmt.Errorf("root element <%s>: %w", start.Name.Local, ErrSchemaMismatch)
		}
		if err := dec.DecodeElement(target, &start); err != nil {
			return "", err
		}
		return start.Name.Local, nil
	}
}

// parseFlag parses a boolean report attribute. ok is false when the
// attribute is missing or malformed.
func parseFlag(value string) (flag, ok bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

// parseCount parses a non-negative count attribute.
func parseCount(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	count, err := strconv.Atoi(value)
	if err != nil || count < 0 {
		return 0, false
	}
	return count, true
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// featureGroups keeps grouped feature nodes in first-seen order for schemas
// that report tests flat and carry the feature as metadata.
type featureGroups struct {
	order  []string
	byName map[string]*Node
}

func newFeatureGroups() *featureGroups {
	return &featureGroups{byName: make(map[string]*Node)}
}

func (g *featureGroups) add(feature string, child *Node) {
	node, ok := g.byName[feature]
	if !ok {
		node = newNode(feature, "", NotExecuted)
		g.byName[feature] = node
		g.order = append(g.order, feature)
	}
	node.Children = append(node.Children, child)
}

// nodes returns the grouped features with verdicts combined from their cases.
func (g *featureGroups) nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		node := g.byName[name]
		result := Combine(node.childResults()...)
		node.Executed, node.Successful = result.Executed, result.Successful
		nodes = append(nodes, node)
	}
	return nodes
}
