package conformance

import "testing"

func TestConformance(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("No tests loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)

	fileGroups := make(map[string][]TestResult)
	for _, result := range results {
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	for file, fileResults := range fileGroups {
		t.Run(file, func(t *testing.T) {
			for _, result := range fileResults {
				result := result
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if result.Skipped {
						t.Skip(result.SkipReason)
					}
					if !result.Passed {
						t.Errorf("%v", result.Error)
					}
				})
			}
		})
	}
}

func TestLoadAllTests(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}
	t.Logf("Loaded %d test cases", len(tests))

	for _, test := range tests {
		if test.Test.Name == "" {
			t.Errorf("%s: test with no name", test.File)
		}
		if len(test.Test.Code) == 0 && test.Test.Skip == "" {
			t.Errorf("%s/%s: test with no code", test.File, test.Test.Name)
		}
	}
}
