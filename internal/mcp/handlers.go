package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/archdocs/internal/diagrams"
	"github.com/ziadkadry99/archdocs/internal/docs"
	"github.com/ziadkadry99/archdocs/internal/graph"
	"github.com/ziadkadry99/archdocs/internal/ui"
)

// handleListPages returns one line per registered page.
func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reg := s.registry()
	if reg.Len() == 0 {
		return mcp.NewToolResultText("No pages are registered."), nil
	}
	return mcp.NewToolResultText(formatPageList(reg, s.home)), nil
}

func formatPageList(reg *ui.Registry, home string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d pages:\n\n", reg.Len())
	for _, p := range reg.Pages() {
		title := p.Title
		if title == "" {
			title = p.Ref.Label
		}
		fmt.Fprintf(&b, "- `%s`", p.ID())
		if title != "" {
			fmt.Fprintf(&b, " %s", title)
		}
		if p.ID() == home {
			b.WriteString(" (home)")
		}
		if p.Ref.Description != "" {
			fmt.Fprintf(&b, ": %s", p.Ref.Description)
		}
		if len(p.Related) > 0 {
			ids := make([]string, 0, len(p.Related))
			for _, ref := range p.Related {
				ids = append(ids, ref.ID)
			}
			fmt.Fprintf(&b, " [related: %s]", strings.Join(ids, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// handleGetPage renders a fresh mount of the page as Markdown.
func (s *Server) handleGetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page_id"), nil
	}

	page, ok := s.registry().Lookup(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No page with id %q. Use list_pages to see available ids.", id)), nil
	}

	expand := request.GetBool("expand", false)
	return mcp.NewToolResultText(docs.Page(page.Mount(nil), expand)), nil
}

// handleRelatedPages reports outgoing and incoming references of a page.
func (s *Server) handleRelatedPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page_id"), nil
	}

	reg := s.registry()
	page, ok := reg.Lookup(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No page with id %q. Use list_pages to see available ids.", id)), nil
	}

	var outgoing []string
	for _, ref := range page.Related {
		outgoing = append(outgoing, ref.ID)
	}
	incoming := graph.NewAnalyzer(reg).Inbound(id)

	if request.GetString("format", "text") == "mermaid" {
		return mcp.NewToolResultText(diagrams.Neighborhood(id, outgoing, incoming)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Links from %s\n\n", id)
	if len(page.Related) == 0 {
		b.WriteString("None.\n")
	}
	for _, ref := range page.Related {
		fmt.Fprintf(&b, "- `%s`", ref.ID)
		if ref.Label != "" {
			fmt.Fprintf(&b, " %s", ref.Label)
		}
		if ref.Description != "" {
			fmt.Fprintf(&b, ": %s", ref.Description)
		}
		if _, ok := reg.Lookup(ref.ID); !ok {
			b.WriteString(" (missing page)")
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n## Links to %s\n\n", id)
	if len(incoming) == 0 {
		b.WriteString("None.\n")
	}
	for _, from := range incoming {
		fmt.Fprintf(&b, "- `%s`\n", from)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleSiteMap returns the Mermaid site map.
func (s *Server) handleSiteMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(diagrams.SiteMap(s.registry())), nil
}
