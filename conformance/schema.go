package conformance

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite. Code lines evaluate in
// order against one fresh session; the last line's result is checked
// against the expectation.
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        string      `yaml:"skip,omitempty"`
	Code        CodeBlock   `yaml:"code"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Value *string `yaml:"value,omitempty"` // literal representation of the result
	Error string  `yaml:"error,omitempty"` // substring of the error message
}

// CodeBlock is one or more source lines; a YAML scalar reads as one line
type CodeBlock []string

// UnmarshalYAML accepts either a single scalar or a sequence of scalars
func (c *CodeBlock) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var line string
		if err := node.Decode(&line); err != nil {
			return err
		}
		*c = CodeBlock{line}
		return nil
	case yaml.SequenceNode:
		var lines []string
		if err := node.Decode(&lines); err != nil {
			return err
		}
		*c = CodeBlock(lines)
		return nil
	default:
		return fmt.Errorf("code must be a string or a list of strings")
	}
}
