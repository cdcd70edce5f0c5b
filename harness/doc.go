// Package harness provides scoped execution environments for driving a
// subject CLI process under test. A Context owns every resource allocated
// through it (temporary working directories, spawned processes) and releases
// them in reverse order of allocation when disposed, tolerating individual
// cleanup failures so one broken resource never leaks the rest.
//
// Resources managed:
//   - TempDir: uniquely named temporary directory, removed recursively
//   - Context: working directory + environment shared by spawned commands
//   - Proc: a running subject process, terminated best-effort on dispose
package harness
