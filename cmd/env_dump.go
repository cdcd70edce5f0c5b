package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// EnvDumpCmd prints the process working directory and full environment as
// JSON. It exists for the integration suite, which uses cradle itself as
// the subject to verify environment isolation end to end.
type EnvDumpCmd struct{}

// envDump is the JSON shape emitted by env-dump
type envDump struct {
	Cwd string            `json:"cwd"`
	Env map[string]string `json:"env"`
}

// Run executes the env-dump command
func (e *EnvDumpCmd) Run() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			env[parts[0]] = parts[1]
		}
	}

	return json.NewEncoder(os.Stdout).Encode(envDump{Cwd: wd, Env: env})
}
