//go:build windows

package harness

import "errors"

// SpawnPty is not supported on Windows; subjects needing a console there
// run through the plain Spawn path.
func (b *CommandBuilder) SpawnPty() (*Proc, error) {
	return nil, &SpawnError{Program: b.program, Err: errors.ErrUnsupported}
}
