package results

import (
	"strings"

	"golang.org/x/text/cases"
)

// matcher normalizes names before they are used as index keys. A Caser is
// stateful, so each fold gets its own.
type matcher struct {
	caseInsensitive bool
}

func (m matcher) key(name string) string {
	if !m.caseInsensitive {
		return name
	}
	return cases.Fold().String(name)
}

// contains reports whether name embeds the signature.
func (m matcher) contains(name, signature string) bool {
	return strings.Contains(m.key(name), m.key(signature))
}

// Index is the lookup structure built over one parsed report.
type Index struct {
	source   string
	root     *Node
	match    matcher
	features map[string]*featureEntry
}

type featureEntry struct {
	node  *Node
	cases map[string][]*Node
}

func (e *featureEntry) add(key string, node *Node) {
	for _, existing := range e.cases[key] {
		if existing == node {
			return
		}
	}
	e.cases[key] = append(e.cases[key], node)
}

func newIndex(root *Node, match matcher) *Index {
	index := &Index{
		source:   root.FullName,
		root:     root,
		match:    match,
		features: make(map[string]*featureEntry),
	}
	for _, feature := range root.Children {
		key := match.key(feature.Name)
		if _, exists := index.features[key]; exists {
			continue
		}
		entry := &featureEntry{node: feature, cases: make(map[string][]*Node)}
		for _, child := range feature.Children {
			entry.add(match.key(child.Name), child)
			// Also reachable by the raw framework name, so a case whose name
			// only looks parameterized still matches exactly.
			if fullKey := match.key(child.FullName); fullKey != match.key(child.Name) {
				entry.add(fullKey, child)
			}
		}
		index.features[key] = entry
	}
	return index
}

// Source names the report the index was built from: its path when loaded
// from a file.
func (idx *Index) Source() string {
	return idx.source
}

func (idx *Index) feature(name string) (*featureEntry, bool) {
	entry, ok := idx.features[idx.match.key(name)]
	return entry, ok
}

// cases returns every direct child of the feature reported under name.
func (idx *Index) cases(featureName, name string) []*Node {
	entry, ok := idx.feature(featureName)
	if !ok {
		return nil
	}
	return entry.cases[idx.match.key(name)]
}

// firstCase returns the first child of the feature reported under name.
func (idx *Index) firstCase(featureName, name string) (*Node, bool) {
	nodes := idx.cases(featureName, name)
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}
