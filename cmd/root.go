package cmd

import (
	"os"

	"cradle/config"
	"cradle/logging"

	"github.com/alecthomas/kong"
)

const defaultDBPath = "~/.cradle/runs.db"

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"100"`
	DBPath      string           `help:"Path to the run history database" default:"~/.cradle/runs.db" env:"CRADLE_DB_PATH"`

	Run     RunCmd     `cmd:"" help:"Run a scenario catalog against the subject"`
	List    ListCmd    `cmd:"" help:"List the scenarios in a catalog"`
	Compat  CompatCmd  `cmd:"" help:"Run a compatibility-suite manifest against the subject"`
	History HistoryCmd `cmd:"" help:"Show recorded scenario runs"`
	EnvDump EnvDumpCmd `cmd:"" name:"env-dump" help:"Print working directory and environment as JSON" hidden:""`

	// Internal field for settings (not a flag)
	settings *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
// with proper precedence: CLI flags > env vars > settings.json > defaults.
func (c *CLI) AfterApply() error {
	if c.settings != nil {
		// Apply DBPath setting only if the flag is at its default and the
		// env var is not set
		if c.DBPath == defaultDBPath {
			if _, hasEnv := os.LookupEnv("CRADLE_DB_PATH"); !hasEnv {
				if c.settings.DBPath != "" {
					c.DBPath = c.settings.DBPath
				}
			}
		}

		if c.MaxLogFiles == 100 && c.settings.MaxLogFiles != nil {
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}

		if !c.Debug && c.settings.Debug != nil && *c.settings.Debug {
			c.Debug = true
		}
	}

	_, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	return err
}

// subject resolves the subject executable with flag > settings precedence.
// Returns "" when nothing is configured.
func (c *CLI) subject(flag string) string {
	if flag != "" {
		return flag
	}
	if c.settings != nil {
		return c.settings.Subject
	}
	return ""
}

// env returns the base environment for scenario contexts.
func (c *CLI) env() map[string]string {
	if c.settings == nil {
		return nil
	}
	return c.settings.Env
}
