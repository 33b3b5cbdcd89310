package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ziadkadry99/archdocs/internal/config"
	"github.com/ziadkadry99/archdocs/internal/content"
	"github.com/ziadkadry99/archdocs/internal/site"
	"github.com/ziadkadry99/archdocs/internal/ui"
	"github.com/ziadkadry99/archdocs/internal/watcher"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `archdocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadRegistry reads the pages selected by cfg.
func loadRegistry(cfg *config.Config) (*ui.Registry, error) {
	reg, err := content.Load(content.Options{
		Dir:     cfg.ContentDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("loading pages: %w", err)
	}
	if verbose {
		src := cfg.ContentDir
		if src == "" {
			src = "built-in pages"
		}
		fmt.Fprintf(os.Stderr, "Loaded %d pages from %s\n", reg.Len(), src)
	}
	return reg, nil
}

// resolveHome returns the configured home page, falling back to the first
// registered page with a warning.
func resolveHome(cfg *config.Config, reg *ui.Registry) string {
	if _, ok := reg.Lookup(cfg.Home); ok {
		return cfg.Home
	}
	ids := reg.IDs()
	if len(ids) == 0 {
		return cfg.Home
	}
	fmt.Fprintf(os.Stderr, "Warning: home page %q not found, using %q\n", cfg.Home, ids[0])
	return ids[0]
}

// newShell builds the HTML page shell from cfg.
func newShell(cfg *config.Config) (*site.Shell, error) {
	shell, err := site.NewShell(cfg.Title, site.NewMarkup(cfg.HighlightStyle))
	if err != nil {
		return nil, fmt.Errorf("creating page shell: %w", err)
	}
	return shell, nil
}

// watchContent reloads the registry whenever page files change and hands
// the result to onReload. Load errors are logged and the old pages stay.
func watchContent(ctx context.Context, cfg *config.Config, onReload func(*ui.Registry)) error {
	if cfg.ContentDir == "" {
		return fmt.Errorf("watching requires content_dir; the built-in pages never change")
	}
	w, err := watcher.New(cfg.ContentDir, func() {
		reg, err := loadRegistry(cfg)
		if err != nil {
			log.Printf("watch: %v", err)
			return
		}
		onReload(reg)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", cfg.ContentDir, err)
	}
	go w.Run(ctx)
	fmt.Fprintf(os.Stderr, "Watching %s for changes\n", cfg.ContentDir)
	return nil
}
