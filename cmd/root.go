package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archdocs/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "archdocs",
	Short: "Composable architecture documentation with collapsible sections, tabs and linked pages",
	Long: `archdocs serves architecture documentation built from YAML page
definitions. Pages are composed of collapsible sections, tab groups and
content primitives, and link to each other through related-reading panels.
The same pages can be browsed live, in the terminal, exported as a static
site or Markdown, and served to AI agents over MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
