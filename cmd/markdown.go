package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archdocs/internal/docs"
)

var markdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Export the pages as Markdown files",
	Long: `Writes one Markdown file per page plus an index.md. Pages are written in
their default state; --expand includes collapsed sections and every tab.`,
	RunE: runMarkdown,
}

func init() {
	markdownCmd.Flags().String("output", "", "output directory (defaults to {output_dir}/markdown)")
	markdownCmd.Flags().Bool("expand", false, "include collapsed sections and inactive tabs")
	rootCmd.AddCommand(markdownCmd)
}

func runMarkdown(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = filepath.Join(cfg.OutputDir, "markdown")
	}

	gen := docs.NewDocGenerator(outputDir, cfg.Title)
	gen.Expand, _ = cmd.Flags().GetBool("expand")
	n, err := gen.Generate(reg)
	if err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	fmt.Printf("Markdown written: %s (%d pages)\n", outputDir, n)
	return nil
}
