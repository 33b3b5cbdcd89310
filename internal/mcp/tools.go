package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listPagesTool defines the list_pages MCP tool.
var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List every documentation page with its id, title, description and related pages."),
)

// getPageTool defines the get_page MCP tool.
var getPageTool = mcp.NewTool("get_page",
	mcp.WithDescription("Get a documentation page as Markdown. By default sections are shown as a reader first sees them; set expand to include collapsed sections and every tab."),
	mcp.WithString("page_id",
		mcp.Required(),
		mcp.Description("Page id as returned by list_pages"),
	),
	mcp.WithBoolean("expand",
		mcp.Description("Include collapsed sections and inactive tabs (default false)"),
	),
)

// relatedPagesTool defines the related_pages MCP tool.
var relatedPagesTool = mcp.NewTool("related_pages",
	mcp.WithDescription("Get the pages a page links to and the pages that link to it."),
	mcp.WithString("page_id",
		mcp.Required(),
		mcp.Description("Page id as returned by list_pages"),
	),
	mcp.WithString("format",
		mcp.Description("Output format"),
		mcp.Enum("text", "mermaid"),
	),
)

// siteMapTool defines the site_map MCP tool.
var siteMapTool = mcp.NewTool("site_map",
	mcp.WithDescription("Get a Mermaid diagram of all pages and their related-page links."),
)
