package mcp

import (
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the documentation pages.
type Server struct {
	mu   sync.RWMutex
	reg  *ui.Registry
	home string
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server over reg.
func NewServer(reg *ui.Registry, home string) *Server {
	s := &Server{
		reg:  reg,
		home: home,
	}

	s.mcp = server.NewMCPServer(
		"archdocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPagesTool, s.handleListPages)
	s.mcp.AddTool(getPageTool, s.handleGetPage)
	s.mcp.AddTool(relatedPagesTool, s.handleRelatedPages)
	s.mcp.AddTool(siteMapTool, s.handleSiteMap)
}

// Reload swaps the registry after content changed.
func (s *Server) Reload(reg *ui.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg = reg
}

func (s *Server) registry() *ui.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
