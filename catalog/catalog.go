// Package catalog loads the JSON catalogs of subject test scenarios: named,
// ordered sequences of command-line invocations with expected-output
// descriptors. The harness only executes steps and hands captured output
// back; the matching helpers here are the caller side of that contract.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog is a named collection of scenarios loaded from one JSON file.
type Catalog struct {
	Scenarios []Scenario `json:"scenarios"`
}

// Scenario is an ordered sequence of subject invocations sharing a single
// execution context.
type Scenario struct {
	Name  string            `json:"name"`
	Env   map[string]string `json:"env,omitempty"`
	Steps []Step            `json:"steps"`
}

// Step is one subject invocation plus its expected-output descriptor.
// Output names a fixture file on disk; OutputStr carries literal expected
// text; the AnyOutput sentinel in either accepts whatever the subject
// prints. At most one of the two may be set.
type Step struct {
	Args      []string `json:"args"`
	Output    string   `json:"output,omitempty"`
	OutputStr *string  `json:"outputStr,omitempty"`
	ExitCode  int      `json:"exitCode,omitempty"`
}

// Load parses and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	if err := cat.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Scenarios))
	for i, sc := range c.Scenarios {
		if sc.Name == "" {
			return fmt.Errorf("scenario %d has no name", i)
		}
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true

		if len(sc.Steps) == 0 {
			return fmt.Errorf("scenario %q has no steps", sc.Name)
		}
		for j, step := range sc.Steps {
			if len(step.Args) == 0 {
				return fmt.Errorf("scenario %q step %d has no arguments", sc.Name, j)
			}
			if step.Output != "" && step.OutputStr != nil {
				return fmt.Errorf("scenario %q step %d sets both output and outputStr", sc.Name, j)
			}
		}
	}
	return nil
}
