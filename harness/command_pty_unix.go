//go:build unix

package harness

import (
	"io"
	"os/exec"

	"github.com/creack/pty"
)

// SpawnPty starts the configured program under a pseudo-terminal, for
// subjects that change behavior when attached to a TTY. Environment and
// working-directory semantics match Spawn exactly. The pty interleaves the
// child's stdout and stderr, so the combined stream is captured as stdout.
func (b *CommandBuilder) SpawnPty() (*Proc, error) {
	cmd := exec.Command(b.program, b.args...)
	cmd.Dir = b.cwd
	cmd.Env = envSlice(b.env)

	p := &Proc{cmd: cmd}
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, &SpawnError{Program: b.program, Err: err}
	}
	p.ptmx = ptmx
	p.ptyDone = make(chan struct{})

	// Drain the pty until the child side closes. Wait joins on ptyDone so
	// the captured output is complete before it is returned.
	go func() {
		defer close(p.ptyDone)
		io.Copy(&p.stdout, ptmx)
	}()

	if b.owner != nil {
		b.owner.adopt(p)
	}
	return p, nil
}
