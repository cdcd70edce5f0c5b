// Package runner executes scenario catalogs and compatibility suites
// against a subject executable. Each scenario runs inside its own harness
// context (fresh temporary working directory, scenario environment) that is
// disposed when the scenario finishes, whatever the outcome. Comparison of
// captured output against the expected-output descriptors happens here, on
// the caller side of the harness contract.
package runner

import (
	"context"
	"fmt"
	"time"

	"cradle/catalog"
	"cradle/harness"
	"cradle/logging"
	"cradle/storage"

	"golang.org/x/sync/errgroup"
)

// Options configures a Runner.
type Options struct {
	// Subject is the executable under test.
	Subject string
	// FixturesDir holds the expected-output fixture files catalogs refer to.
	FixturesDir string
	// Env is the base environment every scenario starts from.
	Env map[string]string
	// Parallelism caps how many scenarios run concurrently (min 1).
	Parallelism int
	// StepTimeout bounds a single subject invocation. The harness core has
	// no timeout of its own; it is layered on here around spawn and wait.
	StepTimeout time.Duration
	// Store, when set, records every scenario run.
	Store *storage.Store
}

// Runner executes scenarios against the configured subject.
type Runner struct {
	opts Options
}

// New creates a Runner, applying option defaults.
func New(opts Options) *Runner {
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = 30 * time.Second
	}
	return &Runner{opts: opts}
}

// RunAll executes the given scenarios, at most Parallelism at a time.
// Scenarios are independent: separate contexts share nothing, so they may
// run concurrently without coordination. Results keep catalog order.
func (r *Runner) RunAll(ctx context.Context, scenarios []catalog.Scenario) []ScenarioResult {
	results := make([]ScenarioResult, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallelism)
	for i, sc := range scenarios {
		g.Go(func() error {
			results[i] = r.RunScenario(ctx, sc)
			return nil
		})
	}
	g.Wait()

	return results
}

// RunScenario executes one scenario in a fresh execution context. The
// context is disposed before returning, which terminates any process a
// failed step may have leaked and removes the temporary working directory.
func (r *Runner) RunScenario(ctx context.Context, sc catalog.Scenario) ScenarioResult {
	logging.Logger.Debug("running scenario", "scenario", sc.Name, "steps", len(sc.Steps))
	start := time.Now()

	builder := harness.NewContextBuilder().
		UseTempCwd().
		SetProgram(r.opts.Subject)
	for k, v := range r.opts.Env {
		builder.SetEnv(k, v)
	}
	for k, v := range sc.Env {
		builder.SetEnv(k, v)
	}

	ec, err := builder.Build()
	if err != nil {
		return ScenarioResult{Name: sc.Name, Err: err, Duration: time.Since(start)}
	}
	defer ec.Dispose()

	res := ScenarioResult{Name: sc.Name, Passed: true}
	for _, step := range sc.Steps {
		sr, err := r.runStep(ctx, ec, step)
		if err != nil {
			res.Err = err
			res.Passed = false
			break
		}
		res.Steps = append(res.Steps, sr)
		if !sr.Passed {
			res.Passed = false
		}
	}
	res.Duration = time.Since(start)

	r.record(res)
	return res
}

func (r *Runner) runStep(ctx context.Context, ec *harness.Context, step catalog.Step) (StepResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.StepTimeout)
	defer cancel()

	proc, err := ec.NewCommand().Args(step.Args...).Spawn()
	if err != nil {
		return StepResult{}, err
	}

	type waited struct {
		res harness.Result
		err error
	}
	done := make(chan waited, 1)
	go func() {
		res, err := proc.Wait()
		done <- waited{res, err}
	}()

	select {
	case <-ctx.Done():
		proc.Dispose()
		return StepResult{
			Args:   step.Args,
			Reason: fmt.Sprintf("timed out after %s", r.opts.StepTimeout),
		}, nil
	case w := <-done:
		if w.err != nil {
			return StepResult{}, w.err
		}
		passed, reason, err := r.compare(step, w.res)
		if err != nil {
			return StepResult{}, err
		}
		return StepResult{
			Args:   step.Args,
			Result: w.res,
			Passed: passed,
			Reason: reason,
		}, nil
	}
}

// compare checks a finished step against its expected-output descriptor.
func (r *Runner) compare(step catalog.Step, res harness.Result) (bool, string, error) {
	if res.ExitCode != step.ExitCode {
		return false, fmt.Sprintf("exit code %d, want %d", res.ExitCode, step.ExitCode), nil
	}

	expected, any, err := catalog.Expected(step, r.opts.FixturesDir)
	if err != nil {
		return false, "", err
	}
	if any {
		return true, "", nil
	}
	if !catalog.Match(expected, res.Stdout) {
		return false, fmt.Sprintf("output mismatch:\n--- want ---\n%s--- got ---\n%s", expected, res.Stdout), nil
	}
	return true, "", nil
}

// record persists the scenario outcome when a store is configured. A
// failing store is a warning, never a run failure.
func (r *Runner) record(res ScenarioResult) {
	if r.opts.Store == nil {
		return
	}
	run := &storage.Run{
		Scenario:   res.Name,
		Subject:    r.opts.Subject,
		Passed:     res.Passed,
		StepCount:  len(res.Steps),
		DurationMS: res.Duration.Milliseconds(),
	}
	if err := r.opts.Store.SaveRun(run); err != nil {
		logging.Logger.Warn("failed to record run", "scenario", res.Name, "error", err)
	}
}
