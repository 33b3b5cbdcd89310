package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archdocs/internal/diagrams"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the related-pages graph",
	Long:  `Prints the adjacency list of the related-pages graph as JSON, or as a Mermaid site map.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cfg)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reg.Adjacency())
		case "mermaid":
			fmt.Print(diagrams.SiteMap(reg))
			return nil
		default:
			return fmt.Errorf("unknown format %q: must be json or mermaid", format)
		}
	},
}

func init() {
	graphCmd.Flags().StringP("format", "f", "json", "output format: json or mermaid")
	rootCmd.AddCommand(graphCmd)
}
