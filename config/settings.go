// Package config loads operator settings from ~/.cradle/settings.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings represents the structure of ~/.cradle/settings.json.
type Settings struct {
	// Subject is the default executable under test.
	Subject string `json:"subject,omitempty"`
	// FixturesDir holds the expected-output fixture files.
	FixturesDir string `json:"fixtures_dir,omitempty"`
	// Env is the base environment handed to every scenario context.
	Env         map[string]string `json:"env,omitempty"`
	DBPath      string            `json:"db_path,omitempty"`
	Debug       *bool             `json:"debug,omitempty"`
	MaxLogFiles *int              `json:"max_log_files,omitempty"`
	Parallelism *int              `json:"parallelism,omitempty"`
}

// LoadSettings loads settings from ~/.cradle/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// No home directory means no settings file. This is routine when
		// cradle itself runs as a subject inside an isolated context with
		// an empty environment.
		return &Settings{}, nil
	}

	path := filepath.Join(homeDir, ".cradle", "settings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	// Expand paths that start with ~
	settings.Subject = expandPath(settings.Subject)
	settings.FixturesDir = expandPath(settings.FixturesDir)
	settings.DBPath = expandPath(settings.DBPath)

	return &settings, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
