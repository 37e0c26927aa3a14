package results

// Node is the schema-independent shape of a parsed report. The root's children
// are feature nodes; a feature's children are cases, and for schemas with
// outline overview nodes, outlines holding example cases.
//
// Name is matched exactly against feature and scenario names. FullName is the
// raw framework identifier that example signatures are searched in.
type Node struct {
	Name       string
	FullName   string
	Executed   bool
	Successful bool
	Children   []*Node
}

// Result returns the node's own verdict.
func (n *Node) Result() TestResult {
	if n == nil {
		return NotExecuted
	}
	return TestResult{Executed: n.Executed, Successful: n.Successful}
}

func newNode(name, fullName string, result TestResult) *Node {
	if fullName == "" {
		fullName = name
	}
	return &Node{
		Name:       name,
		FullName:   fullName,
		Executed:   result.Executed,
		Successful: result.Successful,
	}
}

// childResults collects the verdicts of n's children.
func (n *Node) childResults() []TestResult {
	results := make([]TestResult, 0, len(n.Children))
	for _, child := range n.Children {
		results = append(results, child.Result())
	}
	return results
}
