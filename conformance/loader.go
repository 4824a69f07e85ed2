package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestDir is the conformance corpus directory, relative to this package
const TestDir = "testdata"

// LoadedTest represents a test case with its source file path
type LoadedTest struct {
	File  string
	Suite string
	Test  TestCase
}

// LoadAllTests walks the corpus directory and loads every test case
func LoadAllTests() ([]LoadedTest, error) {
	var loaded []LoadedTest

	err := filepath.Walk(TestDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		suite, err := loadTestFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		rel, _ := filepath.Rel(TestDir, path)
		for _, test := range suite.Tests {
			loaded = append(loaded, LoadedTest{
				File:  rel,
				Suite: suite.Name,
				Test:  test,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func loadTestFile(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, err
	}
	if suite.Name == "" {
		return nil, fmt.Errorf("suite has no name")
	}
	return &suite, nil
}
