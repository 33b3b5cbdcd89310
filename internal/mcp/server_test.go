package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

func testRegistry(t *testing.T) *ui.Registry {
	t.Helper()
	reg := ui.NewRegistry()
	pages := []*ui.Page{
		{
			Ref:   ui.PageRef{ID: "loop-detection", Label: "Loop Detection", Description: "Detecting repetitive calls"},
			Title: "Loop Detection",
			Compose: func() []ui.Node {
				return []ui.Node{
					ui.NewDisclosure("Overview", "", 0, true,
						ui.Prose{Markdown: "visible text"},
						ui.NewDisclosure("Details", "", 1, false,
							ui.Prose{Markdown: "collapsed text"},
						),
					),
				}
			},
			Related: []ui.PageRef{{ID: "tool-scheduler", Label: "Tool Scheduler"}, {ID: "ghost"}},
		},
		{
			Ref:     ui.PageRef{ID: "tool-scheduler"},
			Related: []ui.PageRef{{ID: "loop-detection"}},
		},
	}
	for _, p := range pages {
		if err := reg.Register(p); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_pages", listPagesTool, "list_pages"},
		{"get_page", getPageTool, "get_page"},
		{"related_pages", relatedPagesTool, "related_pages"},
		{"site_map", siteMapTool, "site_map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	reg := testRegistry(t)
	srv := NewServer(reg, "loop-detection")
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.registry() != reg {
		t.Error("registry not set correctly")
	}
}

func TestHandleListPages(t *testing.T) {
	srv := NewServer(testRegistry(t), "loop-detection")
	text := extractText(call(t, srv.handleListPages, nil))

	for _, want := range []string{
		"2 pages:",
		"- `loop-detection` Loop Detection (home): Detecting repetitive calls [related: tool-scheduler, ghost]",
		"- `tool-scheduler` [related: loop-detection]",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}

	empty := NewServer(ui.NewRegistry(), "")
	if got := extractText(call(t, empty.handleListPages, nil)); !strings.Contains(got, "No pages") {
		t.Errorf("empty registry: %q", got)
	}
}

func TestHandleGetPage(t *testing.T) {
	srv := NewServer(testRegistry(t), "loop-detection")

	t.Run("default state", func(t *testing.T) {
		result := call(t, srv.handleGetPage, map[string]any{"page_id": "loop-detection"})
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		if !strings.Contains(text, "# Loop Detection") || !strings.Contains(text, "visible text") {
			t.Errorf("page text = %q", text)
		}
		if strings.Contains(text, "collapsed text") {
			t.Error("collapsed section content should be omitted")
		}
	})

	t.Run("expanded", func(t *testing.T) {
		result := call(t, srv.handleGetPage, map[string]any{"page_id": "loop-detection", "expand": true})
		if !strings.Contains(extractText(result), "collapsed text") {
			t.Error("expand should include collapsed sections")
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		result := call(t, srv.handleGetPage, map[string]any{"page_id": "ghost"})
		if !result.IsError {
			t.Error("expected error for unknown page")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		result := call(t, srv.handleGetPage, map[string]any{})
		if !result.IsError {
			t.Error("expected error for missing page_id")
		}
	})
}

func TestHandleRelatedPages(t *testing.T) {
	srv := NewServer(testRegistry(t), "loop-detection")

	text := extractText(call(t, srv.handleRelatedPages, map[string]any{"page_id": "loop-detection"}))
	for _, want := range []string{
		"- `tool-scheduler` Tool Scheduler\n",
		"- `ghost` (missing page)",
		"## Links to loop-detection\n\n- `tool-scheduler`",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}

	mermaid := extractText(call(t, srv.handleRelatedPages, map[string]any{"page_id": "tool-scheduler", "format": "mermaid"}))
	if !strings.HasPrefix(mermaid, "graph LR") {
		t.Errorf("mermaid output = %q", mermaid)
	}

	if result := call(t, srv.handleRelatedPages, map[string]any{"page_id": "nope"}); !result.IsError {
		t.Error("expected error for unknown page")
	}
}

func TestHandleSiteMapAndReload(t *testing.T) {
	srv := NewServer(testRegistry(t), "loop-detection")
	text := extractText(call(t, srv.handleSiteMap, nil))
	if !strings.Contains(text, "p_loop_detection --> p_tool_scheduler") {
		t.Errorf("site map = %q", text)
	}

	next := ui.NewRegistry()
	_ = next.Register(&ui.Page{Ref: ui.PageRef{ID: "only"}})
	srv.Reload(next)
	if got := extractText(call(t, srv.handleListPages, nil)); !strings.Contains(got, "1 pages:") {
		t.Errorf("after reload: %q", got)
	}
}
