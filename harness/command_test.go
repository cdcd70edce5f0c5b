package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is re-executed by spawn tests as the subject program.
// It is not a test on its own.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "helper: no command")
		os.Exit(2)
	}

	switch args[0] {
	case "echo":
		fmt.Println(strings.Join(args[1:], " "))
	case "env":
		env := os.Environ()
		sort.Strings(env)
		for _, kv := range env {
			fmt.Println(kv)
		}
	case "cwd":
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(wd)
	case "sleep":
		time.Sleep(time.Minute)
	case "fail":
		fmt.Fprintln(os.Stderr, "boom")
		os.Exit(3)
	default:
		fmt.Fprintf(os.Stderr, "helper: unknown command %q\n", args[0])
		os.Exit(2)
	}
}

// helperCommand builds a command that re-executes the test binary in
// helper-process mode.
func helperCommand(t *testing.T, ctx *Context, args ...string) *CommandBuilder {
	t.Helper()
	exe, err := os.Executable()
	require.NoError(t, err)

	full := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
	return ctx.NewCommand().
		SetProgram(exe).
		Args(full...).
		SetEnv("GO_WANT_HELPER_PROCESS", "1")
}

func TestSpawnCapturesOutput(t *testing.T) {
	ctx, err := NewContextBuilder().Build()
	require.NoError(t, err)
	defer ctx.Dispose()

	proc, err := helperCommand(t, ctx, "echo", "hello").Spawn()
	require.NoError(t, err)

	res, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestSpawnStderrCaptured(t *testing.T) {
	ctx, err := NewContextBuilder().Build()
	require.NoError(t, err)
	defer ctx.Dispose()

	proc, err := helperCommand(t, ctx, "fail").Spawn()
	require.NoError(t, err)

	res, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom\n", res.Stderr)
}

func TestSpawnExactEnvironment(t *testing.T) {
	ctx, err := NewContextBuilder().SetEnv("CRADLE_SENTINEL", "xyzzy").Build()
	require.NoError(t, err)
	defer ctx.Dispose()

	proc, err := helperCommand(t, ctx, "env").Spawn()
	require.NoError(t, err)

	res, err := proc.Wait()
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode, "stderr: %s", res.Stderr)

	// The child sees exactly the accumulated map: the sentinel plus the
	// helper-process marker, and nothing inherited from this process
	assert.Contains(t, res.Stdout, "CRADLE_SENTINEL=xyzzy\n")
	assert.NotContains(t, res.Stdout, "HOME=")
	assert.NotContains(t, res.Stdout, "PATH=")
}

func TestSpawnWorkingDirectory(t *testing.T) {
	ctx, err := NewContextBuilder().UseTempCwd().Build()
	require.NoError(t, err)
	defer ctx.Dispose()

	proc, err := helperCommand(t, ctx, "cwd").Spawn()
	require.NoError(t, err)

	res, err := proc.Wait()
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode, "stderr: %s", res.Stderr)

	// Resolve symlinks on both sides: the OS temp dir may be a symlink
	want, err := filepath.EvalSymlinks(ctx.Cwd())
	require.NoError(t, err)
	assert.Equal(t, want, resolved(t, strings.TrimSpace(res.Stdout)))
}

func TestSetCwdOverridesForOneCommandOnly(t *testing.T) {
	ctx, err := NewContextBuilder().UseTempCwd().Build()
	require.NoError(t, err)
	defer ctx.Dispose()

	sub := filepath.Join(ctx.Cwd(), "elsewhere")
	require.NoError(t, os.Mkdir(sub, 0755))

	overridden, err := helperCommand(t, ctx, "cwd").SetCwd(sub).Spawn()
	require.NoError(t, err)
	sibling, err := helperCommand(t, ctx, "cwd").Spawn()
	require.NoError(t, err)

	overriddenRes, err := overridden.Wait()
	require.NoError(t, err)
	siblingRes, err := sibling.Wait()
	require.NoError(t, err)

	assert.Equal(t, resolved(t, sub), resolved(t, strings.TrimSpace(overriddenRes.Stdout)))
	want, err := filepath.EvalSymlinks(ctx.Cwd())
	require.NoError(t, err)
	assert.Equal(t, want, resolved(t, strings.TrimSpace(siblingRes.Stdout)),
		"a sibling command must keep the context's working directory")
}

func TestSpawnUnknownProgram(t *testing.T) {
	ctx, err := NewContextBuilder().Build()
	require.NoError(t, err)
	defer ctx.Dispose()

	_, err = ctx.NewCommand().SetProgram("cradle-no-such-program").Spawn()
	require.Error(t, err)

	var spawnErr *SpawnError
	assert.True(t, errors.As(err, &spawnErr))
	assert.Equal(t, "cradle-no-such-program", spawnErr.Program)
}

func TestSpawnDoesNotBlockOnCompletion(t *testing.T) {
	ctx, err := NewContextBuilder().Build()
	require.NoError(t, err)

	start := time.Now()
	_, err = helperCommand(t, ctx, "sleep").Spawn()
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)

	// Dispose reaps the sleeper
	ctx.Dispose()
}

func TestEnvSliceNeverNil(t *testing.T) {
	assert.NotNil(t, envSlice(nil), "a nil env slice would make exec inherit the parent environment")
	assert.Empty(t, envSlice(nil))
	assert.Equal(t, []string{"A=1", "B=2"}, envSlice(map[string]string{"B": "2", "A": "1"}))
}

func resolved(t *testing.T, path string) string {
	t.Helper()
	out, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return out
}
