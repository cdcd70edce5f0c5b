// Package compat loads compatibility-suite manifests: the lists of
// subsystem test files fed to the subject runtime, with per-entry
// expected-failure overrides for files the subject is known not to pass
// yet.
package compat

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes one compatibility suite.
type Manifest struct {
	Suite   string  `yaml:"suite"`
	Entries []Entry `yaml:"entries"`
}

// Entry is one test file plus its expected-failure override. An entry with
// ExpectFailure set passes the suite when the subject fails on it, and
// must give a Reason so the override can be retired once fixed.
type Entry struct {
	File          string `yaml:"file"`
	ExpectFailure bool   `yaml:"expectFailure,omitempty"`
	Reason        string `yaml:"reason,omitempty"`
}

// Load parses and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Suite == "" {
		return fmt.Errorf("manifest has no suite name")
	}

	seen := make(map[string]bool, len(m.Entries))
	for i, e := range m.Entries {
		if e.File == "" {
			return fmt.Errorf("entry %d has no file", i)
		}
		if seen[e.File] {
			return fmt.Errorf("duplicate entry for %q", e.File)
		}
		seen[e.File] = true

		if e.ExpectFailure && e.Reason == "" {
			return fmt.Errorf("entry %q expects failure but gives no reason", e.File)
		}
	}
	return nil
}

// Entry returns the manifest entry for file, if present.
func (m *Manifest) Entry(file string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.File == file {
			return e, true
		}
	}
	return Entry{}, false
}
