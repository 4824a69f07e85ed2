package conformance

import (
	"fmt"
	"strings"

	"wisp/interp"
	"wisp/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests, one fresh session per test so that
// definitions never leak between cases.
type Runner struct{}

// NewRunner creates a test runner
func NewRunner() *Runner {
	return &Runner{}
}

// RunAll executes every loaded test
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// Run executes one test case
func (r *Runner) Run(test LoadedTest) TestResult {
	result := TestResult{Test: test}
	if test.Test.Skip != "" {
		result.Skipped = true
		result.SkipReason = test.Test.Skip
		return result
	}

	session := interp.New()
	var val types.Value
	var err error
	for _, line := range test.Test.Code {
		val, err = session.Eval(line)
		if err != nil {
			break
		}
	}

	expect := test.Test.Expect
	switch {
	case expect.Error != "":
		if err == nil {
			result.Error = fmt.Errorf("expected error containing %q, got value %s", expect.Error, literal(val))
			return result
		}
		if !strings.Contains(err.Error(), expect.Error) {
			result.Error = fmt.Errorf("expected error containing %q, got %q", expect.Error, err.Error())
			return result
		}
	case expect.Value != nil:
		if err != nil {
			result.Error = fmt.Errorf("expected value %s, got error %v", *expect.Value, err)
			return result
		}
		if literal(val) != *expect.Value {
			result.Error = fmt.Errorf("expected value %s, got %s", *expect.Value, literal(val))
			return result
		}
	default:
		if err != nil {
			result.Error = err
			return result
		}
	}

	result.Passed = true
	return result
}

func literal(val types.Value) string {
	if val == nil {
		return "<no value>"
	}
	return val.String()
}
