package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archdocs/internal/graph"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check related-page references",
	Long: `Checks every related-reading entry against the registered pages. Exits
non-zero when an entry names a page that does not exist. Orphaned,
unreachable and cyclic pages are reported for information.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().Bool("json", false, "print the report as JSON")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	report := graph.Audit(reg, cfg.Home)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(os.Stdout, report)
	}

	if !report.OK() {
		exitOnError(fmt.Errorf("%d dangling related-page references", len(report.Dangling)))
	}
	return nil
}

func printReport(w io.Writer, r graph.Report) {
	fmt.Fprintf(w, "Pages: %d, links: %d\n", r.Pages, r.Edges)

	if len(r.Dangling) == 0 {
		fmt.Fprintln(w, "All related-page references resolve.")
	} else {
		fmt.Fprintf(w, "\nDangling references (%d):\n", len(r.Dangling))
		for _, d := range r.Dangling {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}

	list := func(title string, ids []string) {
		if len(ids) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s (%d):\n", title, len(ids))
		for _, id := range ids {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
	list("Self references", r.SelfRefs)
	list("Orphans (no incoming links)", r.Orphans)
	list("Unreachable from home", r.Unreachable)

	if len(r.Cycles) > 0 {
		fmt.Fprintf(w, "\nReference cycles (%d):\n", len(r.Cycles))
		for _, c := range r.Cycles {
			fmt.Fprintf(w, "  %s\n", strings.Join(c, " -> "))
		}
	}
}
