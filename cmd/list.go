package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"cradle/catalog"
)

// ListCmd lists the scenarios in a catalog
type ListCmd struct {
	Catalog string `arg:"" help:"Path to the scenario catalog (JSON)" type:"existingfile"`
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (l *ListCmd) Run(cli *CLI) error {
	cat, err := catalog.Load(l.Catalog)
	if err != nil {
		return err
	}

	if l.Format == "json" {
		return printJSON(cat.Scenarios)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSTEPS\tENV")
	for _, sc := range cat.Scenarios {
		fmt.Fprintf(w, "%s\t%d\t%d\n", sc.Name, len(sc.Steps), len(sc.Env))
	}
	w.Flush()

	fmt.Printf("\nTotal: %d scenarios\n", len(cat.Scenarios))
	return nil
}
