package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archdocs/internal/host"
	"github.com/ziadkadry99/archdocs/internal/server"
	"github.com/ziadkadry99/archdocs/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Browse the pages in a live server",
	Long: `Starts an HTTP server that hosts the pages interactively. Every browser
gets its own session: sections stay toggled and tabs stay selected until the
viewer navigates to another page. With --watch, edits to the content
directory are reloaded and open browsers refresh.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("watch", false, "reload pages when the content directory changes (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch, _ = cmd.Flags().GetBool("watch")
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	home := resolveHome(cfg, reg)
	shell, err := newShell(cfg)
	if err != nil {
		return err
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := host.NewSessions(reg, home, cfg.SessionTTL)
	go sessions.Run(ctx)

	srv := server.New(server.Config{
		Port:     cfg.Port,
		Home:     home,
		AllowAll: cfg.AllowAllOrigins,
	}, sessions, shell)

	if cfg.Watch {
		if err := watchContent(ctx, cfg, srv.Reload); err != nil {
			return err
		}
	}

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	fmt.Fprintf(os.Stderr, "archdocs %s serving %d pages at %s\n", Version, reg.Len(), url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go site.OpenBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
