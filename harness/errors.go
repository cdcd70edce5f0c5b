package harness

import "fmt"

// AllocationError reports that a scoped resource could not be created.
// It is fatal to the enclosing test: without the resource there is nothing
// to run against.
type AllocationError struct {
	Resource string
	Err      error
}

// Error implements the error interface
func (e *AllocationError) Error() string {
	return fmt.Sprintf("failed to allocate %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying OS error
func (e *AllocationError) Unwrap() error {
	return e.Err
}

// SpawnError reports that a configured command could not be started, most
// commonly because the program could not be located.
type SpawnError struct {
	Program string
	Err     error
}

// Error implements the error interface
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Program, e.Err)
}

// Unwrap returns the underlying exec error
func (e *SpawnError) Unwrap() error {
	return e.Err
}
