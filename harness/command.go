package harness

import (
	"os/exec"
	"sort"
)

// CommandBuilder accumulates the configuration for one subject invocation:
// program, arguments, working directory and a private environment copy.
// The configuration is frozen at Spawn.
type CommandBuilder struct {
	owner   *Context
	program string
	args    []string
	cwd     string
	env     map[string]string
}

// SetEnv overwrites one entry in the command's private environment copy.
func (b *CommandBuilder) SetEnv(key, value string) *CommandBuilder {
	b.env[key] = value
	return b
}

// SetCwd overrides the working directory for this command only. Sibling
// commands built from the same context keep the context's directory.
func (b *CommandBuilder) SetCwd(path string) *CommandBuilder {
	b.cwd = path
	return b
}

// SetProgram overrides the program to execute.
func (b *CommandBuilder) SetProgram(program string) *CommandBuilder {
	b.program = program
	return b
}

// Args sets the command-line arguments.
func (b *CommandBuilder) Args(args ...string) *CommandBuilder {
	b.args = args
	return b
}

// Spawn starts the configured program and returns immediately; it never
// waits for the child. The child sees exactly the accumulated environment
// map: nothing from the harness process environment leaks in, so a subject
// test can never accidentally observe the harness's own variables. Stdout
// and stderr are captured for later inspection via Wait.
//
// The spawned process is owned by the context that issued this builder and
// is terminated when that context is disposed.
func (b *CommandBuilder) Spawn() (*Proc, error) {
	cmd := exec.Command(b.program, b.args...)
	cmd.Dir = b.cwd
	cmd.Env = envSlice(b.env)

	p := &Proc{cmd: cmd}
	cmd.Stdout = &p.stdout
	cmd.Stderr = &p.stderr

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Program: b.program, Err: err}
	}

	if b.owner != nil {
		b.owner.adopt(p)
	}
	return p, nil
}

// envSlice flattens an environment map into the KEY=VALUE form exec wants,
// sorted for deterministic child environments. The result is non-nil even
// for an empty map: a nil Env makes exec inherit the parent environment,
// which would break the isolation guarantee.
func envSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
