// Package server hosts live documentation sessions over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/archdocs/internal/host"
	"github.com/ziadkadry99/archdocs/internal/site"
	"github.com/ziadkadry99/archdocs/internal/ui"
)

// SessionCookie carries the viewer's session id.
const SessionCookie = "archdocs_session"

// Config holds server configuration.
type Config struct {
	Port     int
	Home     string // page shown at "/"
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server serves pages from per-viewer hosts.
type Server struct {
	cfg        Config
	sessions   *host.Sessions
	shell      *site.Shell
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over sessions. Pages are wrapped with shell.
func New(cfg Config, sessions *host.Sessions, shell *site.Shell) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		shell:    shell,
		hub:      NewHub(),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The websocket stays open, so it sits outside the request timeout.
	r.Get("/ws", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Get("/", s.handleRoot)
		r.Route("/pages/{pageID}", func(r chi.Router) {
			r.Get("/", s.handlePage)
			r.Post("/toggle/{nodeID}", s.handleToggle)
			r.Post("/tabs/{groupID}/{tabID}", s.handleSelectTab)
			r.Get("/related/{index}", s.handleRelated)
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/pages", s.handleAPIPages)
			r.Get("/graph", s.handleAPIGraph)
			r.Get("/search-index", s.handleAPISearchIndex)
		})

		r.Get("/assets/style.css", asset("text/css; charset=utf-8", site.CSS()))
		r.Get("/assets/script.js", asset("application/javascript; charset=utf-8", site.JS()))
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Reload swaps in freshly loaded content and tells open browsers to refresh.
func (s *Server) Reload(reg *ui.Registry) {
	s.sessions.Reload(reg)
	n := s.hub.Broadcast(Event{Type: EventReload})
	log.Printf("server: content reloaded (%d pages), notified %d clients", reg.Len(), n)
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("archdocs server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes live connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func asset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Write([]byte(body))
	}
}
