//go:build windows

package harness

import "os"

// terminate kills the process (Windows implementation). The caller discards
// the error: the process may have already exited.
func terminate(p *os.Process) error {
	return p.Kill()
}
