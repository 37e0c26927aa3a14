package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInconclusiveEqualsNotExecuted(t *testing.T) {
	assert.Equal(t, Inconclusive, NotExecuted)
	assert.True(t, Inconclusive == NotExecuted)
	assert.NotEqual(t, Passed, Failed)
}

func TestTestResultString(t *testing.T) {
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "inconclusive", Inconclusive.String())
	assert.Equal(t, "inconclusive", NotExecuted.String())
	// Not executed is never rendered as passed or failed, whatever the
	// successful flag claims.
	assert.Equal(t, "inconclusive", TestResult{Executed: false, Successful: true}.String())
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name    string
		results []TestResult
		want    TestResult
	}{
		{name: "empty", results: nil, want: NotExecuted},
		{name: "single passed", results: []TestResult{Passed}, want: Passed},
		{name: "all passed", results: []TestResult{Passed, Passed}, want: Passed},
		{name: "passed and failed", results: []TestResult{Passed, Failed}, want: Failed},
		{name: "passed and inconclusive", results: []TestResult{Passed, Inconclusive}, want: Inconclusive},
		{name: "failed outranks inconclusive", results: []TestResult{Inconclusive, Failed, Passed}, want: Failed},
		{name: "not executed child", results: []TestResult{Passed, NotExecuted}, want: Inconclusive},
		{name: "only inconclusive", results: []TestResult{Inconclusive}, want: Inconclusive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Combine(tt.results...))
		})
	}
}

func TestCombineIsCommutativeAndAssociative(t *testing.T) {
	verdicts := []TestResult{Passed, Failed, Inconclusive}
	for _, a := range verdicts {
		for _, b := range verdicts {
			assert.Equal(t, Combine(a, b), Combine(b, a), "%v %v", a, b)
			for _, c := range verdicts {
				left := Combine(Combine(a, b), c)
				right := Combine(a, Combine(b, c))
				assert.Equal(t, left, right, "%v %v %v", a, b, c)
				assert.Equal(t, Combine(a, b, c), left, "%v %v %v", a, b, c)
			}
		}
	}
}
