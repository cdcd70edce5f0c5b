//go:build unix

package harness

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminate sends SIGKILL to the process (Unix implementation). The caller
// discards the error: the process may have already exited.
func terminate(p *os.Process) error {
	return p.Signal(unix.SIGKILL)
}
