package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AnyOutput is the sentinel descriptor accepting any subject output.
const AnyOutput = "[ANY]"

// Wildcard matches any run of characters inside expected text.
const Wildcard = "[WILDCARD]"

// Expected resolves a step's expected-output descriptor to the expected
// text. The second return value reports the any-output sentinel, in which
// case the text is meaningless.
func Expected(step Step, fixturesDir string) (string, bool, error) {
	switch {
	case step.OutputStr != nil:
		if *step.OutputStr == AnyOutput {
			return "", true, nil
		}
		return *step.OutputStr, false, nil
	case step.Output == AnyOutput:
		return "", true, nil
	case step.Output != "":
		data, err := os.ReadFile(filepath.Join(fixturesDir, step.Output))
		if err != nil {
			return "", false, fmt.Errorf("failed to read fixture %s: %w", step.Output, err)
		}
		return string(data), false, nil
	default:
		// No descriptor at all behaves like the sentinel
		return "", true, nil
	}
}

// Match reports whether actual satisfies expected, where expected may
// contain Wildcard markers that each stand for any run of characters.
// Without markers the comparison is exact.
func Match(expected, actual string) bool {
	parts := strings.Split(expected, Wildcard)
	if len(parts) == 1 {
		return expected == actual
	}

	first, last := parts[0], parts[len(parts)-1]
	if len(actual) < len(first)+len(last) {
		return false
	}
	if !strings.HasPrefix(actual, first) || !strings.HasSuffix(actual, last) {
		return false
	}

	rest := actual[len(first) : len(actual)-len(last)]
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return true
}
