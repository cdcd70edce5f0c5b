package runner

import (
	"context"
	"path/filepath"

	"cradle/catalog"
	"cradle/compat"
	"cradle/harness"
	"cradle/logging"
)

// RunCompat feeds every manifest entry to the subject runtime, one isolated
// context per entry, and scores the outcome against the manifest's
// expected-failure overrides. filesDir is where the entry files live.
func (r *Runner) RunCompat(ctx context.Context, m *compat.Manifest, filesDir string) []CompatResult {
	results := make([]CompatResult, 0, len(m.Entries))
	for _, entry := range m.Entries {
		results = append(results, r.runCompatEntry(ctx, entry, filesDir))
	}
	return results
}

func (r *Runner) runCompatEntry(ctx context.Context, entry compat.Entry, filesDir string) CompatResult {
	logging.Logger.Debug("running compat entry", "file", entry.File, "expect_failure", entry.ExpectFailure)

	res := CompatResult{File: entry.File, ExpectFailure: entry.ExpectFailure}

	builder := harness.NewContextBuilder().
		UseTempCwd().
		SetProgram(r.opts.Subject)
	for k, v := range r.opts.Env {
		builder.SetEnv(k, v)
	}

	ec, err := builder.Build()
	if err != nil {
		res.Err = err
		return res
	}
	defer ec.Dispose()

	step, err := r.runStep(ctx, ec, compatStep(filepath.Join(filesDir, entry.File)))
	if err != nil {
		res.Err = err
		return res
	}

	res.ExitCode = step.Result.ExitCode
	// compare accepts any output for compat steps, so a failed step means a
	// non-zero exit or a timeout; both count as the subject failing the file
	failed := !step.Passed
	res.OK = failed == entry.ExpectFailure
	return res
}

// compatStep wraps a test file in a step that accepts any output; manifest
// scoring only looks at how the subject exited.
func compatStep(file string) catalog.Step {
	return catalog.Step{Args: []string{file}, Output: catalog.AnyOutput}
}
