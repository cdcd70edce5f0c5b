package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Proc wraps a spawned subject process. The harness never waits for the
// process on its own: callers that care about completion use Wait, and
// Dispose only sends a best-effort termination signal.
type Proc struct {
	cmd      *exec.Cmd
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	ptmx     *os.File
	ptyDone  chan struct{}
	disposed bool
}

// Result describes a finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// PID returns the OS process id.
func (p *Proc) PID() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the process exits and returns its captured output. A
// non-zero exit is not an error; it is reported through Result.ExitCode.
func (p *Proc) Wait() (Result, error) {
	err := p.cmd.Wait()
	if p.ptmx != nil {
		p.ptmx.Close()
		<-p.ptyDone
	}

	res := Result{
		Stdout: p.stdout.String(),
		Stderr: p.stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, fmt.Errorf("failed to wait for %s: %w", p.cmd.Path, err)
	}
	return res, nil
}

// Dispose sends a best-effort termination signal and discards any failure.
// The process has usually exited already by the time a test scope ends;
// that is the expected case, not an error, and a leaked process must never
// block the rest of a dispose chain. Dispose does not wait for the process
// to actually die.
func (p *Proc) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true

	if p.ptmx != nil {
		p.ptmx.Close()
	}
	if p.cmd.Process != nil {
		_ = terminate(p.cmd.Process)
	}
}
