package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"cradle/catalog"
	"cradle/runner"
	"cradle/storage"
)

// RunCmd runs a scenario catalog against the subject executable
type RunCmd struct {
	Catalog     string        `arg:"" help:"Path to the scenario catalog (JSON)" type:"existingfile"`
	Subject     string        `help:"Subject executable under test" env:"CRADLE_SUBJECT"`
	Fixtures    string        `help:"Directory holding expected-output fixtures (defaults to the catalog's directory)"`
	Filter      string        `help:"Run only scenarios whose name contains this substring"`
	Parallelism int           `help:"How many scenarios to run concurrently" default:"0"`
	Timeout     time.Duration `help:"Per-step timeout" default:"30s"`
	Format      string        `help:"Output format: table or json" enum:"table,json" default:"table"`
	NoHistory   bool          `help:"Skip recording results to the run history database"`
}

// Run executes the run command
func (r *RunCmd) Run(cli *CLI) error {
	cat, err := catalog.Load(r.Catalog)
	if err != nil {
		return err
	}

	scenarios := cat.Scenarios
	if r.Filter != "" {
		scenarios = nil
		for _, sc := range cat.Scenarios {
			if strings.Contains(sc.Name, r.Filter) {
				scenarios = append(scenarios, sc)
			}
		}
		if len(scenarios) == 0 {
			return fmt.Errorf("no scenarios match %q", r.Filter)
		}
	}

	subject := cli.subject(r.Subject)
	if subject == "" {
		return fmt.Errorf("no subject configured: pass --subject or set it in settings.json")
	}

	fixtures := r.Fixtures
	if fixtures == "" && cli.settings != nil && cli.settings.FixturesDir != "" {
		fixtures = cli.settings.FixturesDir
	}
	if fixtures == "" {
		fixtures = filepath.Dir(r.Catalog)
	}

	parallelism := r.Parallelism
	if parallelism <= 0 && cli.settings != nil && cli.settings.Parallelism != nil {
		parallelism = *cli.settings.Parallelism
	}

	var store *storage.Store
	if !r.NoHistory {
		store, err = storage.NewStore(cli.DBPath)
		if err != nil {
			// History is auxiliary; a broken database must not stop the run
			fmt.Fprintf(os.Stderr, "Warning: run history disabled: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	results := runner.New(runner.Options{
		Subject:     subject,
		FixturesDir: fixtures,
		Env:         cli.env(),
		Parallelism: parallelism,
		StepTimeout: r.Timeout,
		Store:       store,
	}).RunAll(context.Background(), scenarios)

	if r.Format == "json" {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		printRunTable(results)
	}

	failed := 0
	for _, res := range results {
		if !res.Passed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}

func printRunTable(results []runner.ScenarioResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tRESULT\tSTEPS\tDURATION")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			res.Name,
			verdict(res.Passed),
			len(res.Steps),
			res.Duration.Round(time.Millisecond))
	}
	w.Flush()

	// Failure details after the summary
	for _, res := range results {
		if res.Passed {
			continue
		}
		fmt.Printf("\n--- %s ---\n", res.Name)
		if res.Err != nil {
			fmt.Printf("harness error: %v\n", res.Err)
		}
		for _, step := range res.Steps {
			if step.Passed {
				continue
			}
			fmt.Printf("step %s: %s\n", strings.Join(step.Args, " "), step.Reason)
		}
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func verdict(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
