package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"cradle/catalog"
	"cradle/compat"
	"cradle/harness"
	"cradle/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubject writes a small shell script standing in for the subject
// executable. It only uses shell builtins because spawned subjects get an
// empty environment, PATH included.
func fakeSubject(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake subject is a shell script")
	}

	script := `#!/bin/sh
case "$1" in
  echo) shift; echo "$@" ;;
  fail) echo boom >&2; exit 3 ;;
  spin) while :; do :; done ;;
  *) read -r line < "$1" || exit 1; [ "$line" = "pass" ] || exit 1 ;;
esac
`
	path := filepath.Join(t.TempDir(), "subject")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func literal(s string) *string { return &s }

func TestRunScenarioPass(t *testing.T) {
	r := New(Options{Subject: fakeSubject(t)})

	res := r.RunScenario(context.Background(), catalog.Scenario{
		Name: "echo",
		Steps: []catalog.Step{
			{Args: []string{"echo", "hello"}, OutputStr: literal("hello\n")},
		},
	})

	require.NoError(t, res.Err)
	assert.True(t, res.Passed)
	require.Len(t, res.Steps, 1)
	assert.Equal(t, "hello\n", res.Steps[0].Result.Stdout)
}

func TestRunScenarioOutputMismatch(t *testing.T) {
	r := New(Options{Subject: fakeSubject(t)})

	res := r.RunScenario(context.Background(), catalog.Scenario{
		Name: "echo",
		Steps: []catalog.Step{
			{Args: []string{"echo", "hello"}, OutputStr: literal("goodbye\n")},
		},
	})

	require.NoError(t, res.Err)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Steps[0].Reason, "output mismatch")
}

func TestRunScenarioWildcardOutput(t *testing.T) {
	r := New(Options{Subject: fakeSubject(t)})

	res := r.RunScenario(context.Background(), catalog.Scenario{
		Name: "echo",
		Steps: []catalog.Step{
			{Args: []string{"echo", "value=12345"}, OutputStr: literal("value=[WILDCARD]\n")},
		},
	})

	require.NoError(t, res.Err)
	assert.True(t, res.Passed)
}

func TestRunScenarioExpectedExitCode(t *testing.T) {
	r := New(Options{Subject: fakeSubject(t)})

	res := r.RunScenario(context.Background(), catalog.Scenario{
		Name: "fail",
		Steps: []catalog.Step{
			{Args: []string{"fail"}, Output: catalog.AnyOutput, ExitCode: 3},
		},
	})

	require.NoError(t, res.Err)
	assert.True(t, res.Passed, "a non-zero exit the catalog expects is a pass")
}

func TestRunScenarioFixtureOutput(t *testing.T) {
	fixtures := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(fixtures, "greeting.out"), []byte("hello\n"), 0644))

	r := New(Options{Subject: fakeSubject(t), FixturesDir: fixtures})

	res := r.RunScenario(context.Background(), catalog.Scenario{
		Name: "fixture",
		Steps: []catalog.Step{
			{Args: []string{"echo", "hello"}, Output: "greeting.out"},
		},
	})

	require.NoError(t, res.Err)
	assert.True(t, res.Passed)
}

func TestRunScenarioSpawnFailure(t *testing.T) {
	r := New(Options{Subject: "cradle-no-such-subject"})

	res := r.RunScenario(context.Background(), catalog.Scenario{
		Name:  "missing",
		Steps: []catalog.Step{{Args: []string{"echo", "x"}}},
	})

	require.Error(t, res.Err)
	var spawnErr *harness.SpawnError
	assert.True(t, errors.As(res.Err, &spawnErr))
	assert.False(t, res.Passed)
}

func TestRunScenarioStepTimeout(t *testing.T) {
	r := New(Options{Subject: fakeSubject(t), StepTimeout: 200 * time.Millisecond})

	res := r.RunScenario(context.Background(), catalog.Scenario{
		Name:  "spin",
		Steps: []catalog.Step{{Args: []string{"spin"}}},
	})

	require.NoError(t, res.Err)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Steps[0].Reason, "timed out")
}

func TestRunAllKeepsCatalogOrder(t *testing.T) {
	r := New(Options{Subject: fakeSubject(t), Parallelism: 3})

	var scenarios []catalog.Scenario
	for _, name := range []string{"a", "b", "c", "d"} {
		scenarios = append(scenarios, catalog.Scenario{
			Name: name,
			Steps: []catalog.Step{
				{Args: []string{"echo", name}, OutputStr: literal(name + "\n")},
			},
		})
	}

	results := r.RunAll(context.Background(), scenarios)
	require.Len(t, results, 4)
	for i, name := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, name, results[i].Name)
		assert.True(t, results[i].Passed)
	}
}

func TestRunScenarioRecordsHistory(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	r := New(Options{Subject: fakeSubject(t), Store: store})

	res := r.RunScenario(context.Background(), catalog.Scenario{
		Name: "recorded",
		Steps: []catalog.Step{
			{Args: []string{"echo", "x"}, Output: catalog.AnyOutput},
		},
	})
	require.NoError(t, res.Err)

	runs, err := store.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "recorded", runs[0].Scenario)
	assert.True(t, runs[0].Passed)
	assert.Equal(t, 1, runs[0].StepCount)
}

func TestRunCompat(t *testing.T) {
	files := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(files, "good.js"), []byte("pass\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(files, "known-bad.js"), []byte("fail\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(files, "regressed.js"), []byte("fail\n"), 0644))

	m := &compat.Manifest{
		Suite: "node",
		Entries: []compat.Entry{
			{File: "good.js"},
			{File: "known-bad.js", ExpectFailure: true, Reason: "tracked upstream"},
			{File: "regressed.js"},
		},
	}

	r := New(Options{Subject: fakeSubject(t)})
	results := r.RunCompat(context.Background(), m, files)
	require.Len(t, results, 3)

	assert.True(t, results[0].OK, "passing file with no override")
	assert.True(t, results[1].OK, "failing file the manifest expects to fail")
	assert.False(t, results[2].OK, "failing file without an override")
}
