package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"cradle/storage"
)

// HistoryCmd shows recorded scenario runs
type HistoryCmd struct {
	Limit  int    `help:"Maximum number of runs to show (0 = all)" default:"20"`
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the history command
func (h *HistoryCmd) Run(cli *CLI) error {
	store, err := storage.NewStore(cli.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(h.Limit)
	if err != nil {
		return err
	}

	if h.Format == "json" {
		return printJSON(runs)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSCENARIO\tSUBJECT\tRESULT\tSTEPS\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Scenario,
			run.Subject,
			verdict(run.Passed),
			run.StepCount,
			(time.Duration(run.DurationMS) * time.Millisecond).String())
	}
	w.Flush()

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	return nil
}
