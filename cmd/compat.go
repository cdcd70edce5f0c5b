package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"cradle/compat"
	"cradle/runner"
)

// CompatCmd runs a compatibility-suite manifest against the subject
type CompatCmd struct {
	Manifest string        `arg:"" help:"Path to the suite manifest (YAML)" type:"existingfile"`
	Files    string        `help:"Directory holding the suite's test files (defaults to the manifest's directory)"`
	Subject  string        `help:"Subject executable under test" env:"CRADLE_SUBJECT"`
	Timeout  time.Duration `help:"Per-file timeout" default:"60s"`
	Format   string        `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the compat command
func (c *CompatCmd) Run(cli *CLI) error {
	m, err := compat.Load(c.Manifest)
	if err != nil {
		return err
	}

	subject := cli.subject(c.Subject)
	if subject == "" {
		return fmt.Errorf("no subject configured: pass --subject or set it in settings.json")
	}

	files := c.Files
	if files == "" {
		files = filepath.Dir(c.Manifest)
	}

	results := runner.New(runner.Options{
		Subject:     subject,
		Env:         cli.env(),
		StepTimeout: c.Timeout,
	}).RunCompat(context.Background(), m, files)

	if c.Format == "json" {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		printCompatTable(m.Suite, results)
	}

	broken := 0
	for _, res := range results {
		if !res.OK {
			broken++
		}
	}
	if broken > 0 {
		return fmt.Errorf("%d of %d entries did not match the manifest", broken, len(results))
	}
	return nil
}

func printCompatTable(suite string, results []runner.CompatResult) {
	fmt.Printf("Suite: %s\n\n", suite)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tEXIT\tEXPECTED\tRESULT")
	for _, res := range results {
		expected := "pass"
		if res.ExpectFailure {
			expected = "fail"
		}
		verdict := "ok"
		if !res.OK {
			verdict = "MISMATCH"
		}
		if res.Err != nil {
			verdict = fmt.Sprintf("error: %v", res.Err)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", res.File, res.ExitCode, expected, verdict)
	}
	w.Flush()
}
