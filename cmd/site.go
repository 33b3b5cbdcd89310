package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archdocs/internal/progress"
	"github.com/ziadkadry99/archdocs/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static documentation website",
	Long: `Exports every page in its default state as a self-contained static HTML
site with navigation, search and client-side tabs.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 0, "port for the local preview server (overrides config)")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory")
	siteCmd.Flags().Int("workers", 0, "pages rendered in parallel (overrides config)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Workers = workers
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	shell, err := newShell(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := &site.Generator{
		Registry:  reg,
		Home:      resolveHome(cfg, reg),
		OutputDir: outputDir,
		Shell:     shell,
		Workers:   cfg.Workers,
		Reporter:  progress.NewReporter(),
	}
	pageCount, err := generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	// Optionally serve the site.
	if serve, _ := cmd.Flags().GetBool("serve"); serve {
		port, _ := cmd.Flags().GetInt("port")
		if port <= 0 {
			port = cfg.Port
		}
		openBrowser, _ := cmd.Flags().GetBool("open")
		if err := site.Preview(ctx, outputDir, port, openBrowser); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}

	return nil
}
