package results

// TestResult is the verdict reported for one node of the feature tree. Two
// results are equal when both flags are equal; Inconclusive and NotExecuted
// share a value.
type TestResult struct {
	Executed   bool
	Successful bool
}

// Named verdicts.
var (
	Passed       = TestResult{Executed: true, Successful: true}
	Failed       = TestResult{Executed: true, Successful: false}
	Inconclusive = TestResult{Executed: false, Successful: false}
	NotExecuted  = TestResult{Executed: false, Successful: false}
)

// String renders the verdict name used in reports.
func (r TestResult) String() string {
	switch r {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "inconclusive"
	}
}

// Combine rolls child verdicts up into one: Failed outranks Inconclusive, which
// outranks Passed. No children yields NotExecuted.
func Combine(results ...TestResult) TestResult {
	if len(results) == 0 {
		return NotExecuted
	}
	combined := Passed
	for _, result := range results {
		switch {
		case result == Failed:
			return Failed
		case !result.Executed:
			combined = Inconclusive
		}
	}
	return combined
}
