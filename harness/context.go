package harness

import (
	"maps"
	"os"
	"path/filepath"
	"runtime"
)

// SubjectProgram is the executable name commands default to when neither
// the context builder nor the command builder overrides it.
var SubjectProgram = "cradle"

// DefaultProgram returns the platform name of the default subject
// executable.
func DefaultProgram() string {
	if runtime.GOOS == "windows" {
		return SubjectProgram + ".exe"
	}
	return SubjectProgram
}

// ContextBuilder accumulates execution-context configuration. All setters
// are pure configuration and never fail; only Build allocates.
type ContextBuilder struct {
	env        map[string]string
	program    string
	subdir     string
	useTempCwd bool
}

// NewContextBuilder returns an empty builder.
func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{env: make(map[string]string)}
}

// SetEnv adds or overwrites one environment entry for the context.
func (b *ContextBuilder) SetEnv(key, value string) *ContextBuilder {
	b.env[key] = value
	return b
}

// UseTempCwd requests a freshly allocated temporary directory as the
// context working directory instead of the ambient one.
func (b *ContextBuilder) UseTempCwd() *ContextBuilder {
	b.useTempCwd = true
	return b
}

// SetCwd configures a relative subdirectory joined onto the working
// directory base when the context is built.
func (b *ContextBuilder) SetCwd(rel string) *ContextBuilder {
	b.subdir = rel
	return b
}

// SetProgram sets the default subject program for commands created through
// the context.
func (b *ContextBuilder) SetProgram(program string) *ContextBuilder {
	b.program = program
	return b
}

// Build resolves the working directory and returns a new Context. It fails
// only when the underlying directory allocation fails.
func (b *ContextBuilder) Build() (*Context, error) {
	c := &Context{
		env:     maps.Clone(b.env),
		program: b.program,
	}
	if c.program == "" {
		c.program = DefaultProgram()
	}

	var base string
	if b.useTempCwd {
		dir, err := NewTempDir()
		if err != nil {
			return nil, err
		}
		c.owned = append(c.owned, dir)
		base = dir.Path()
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, &AllocationError{Resource: "working directory", Err: err}
		}
		base = wd
	}

	if b.subdir != "" {
		base = filepath.Join(base, b.subdir)
		if err := os.MkdirAll(base, 0755); err != nil {
			c.Dispose()
			return nil, &AllocationError{Resource: "working directory", Err: err}
		}
	}

	c.cwd = base
	return c, nil
}

// Context is the top-level execution scope. It holds the environment map
// commands spawned from it inherit, and exclusively owns every resource
// allocated through it.
type Context struct {
	cwd      string
	env      map[string]string
	program  string
	owned    []Disposable
	disposed bool
}

// Cwd returns the resolved absolute working directory. It is computed once
// at build time and never changes.
func (c *Context) Cwd() string {
	return c.cwd
}

// NewCommand returns a command builder seeded with a copy of the context
// environment and the context working directory. Mutating the command's
// environment never leaks into sibling commands or back into the context.
func (c *Context) NewCommand() *CommandBuilder {
	env := maps.Clone(c.env)
	if env == nil {
		env = make(map[string]string)
	}
	return &CommandBuilder{
		owner:   c,
		program: c.program,
		cwd:     c.cwd,
		env:     env,
	}
}

// adopt registers a resource for release when the context is disposed.
func (c *Context) adopt(d Disposable) {
	c.owned = append(c.owned, d)
}

// Dispose releases every resource the context allocated, last-allocated
// first. Children swallow their own failures, so one broken resource never
// stops the chain. Calling Dispose again is a no-op.
func (c *Context) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	for i := len(c.owned) - 1; i >= 0; i-- {
		c.owned[i].Dispose()
	}
	c.owned = nil
}
