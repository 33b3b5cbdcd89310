package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

func loopDetection(t *testing.T) *ui.Page {
	t.Helper()
	return &ui.Page{
		Ref:   ui.PageRef{ID: "loop-detection", Description: "Detecting repetitive tool calls"},
		Title: "Loop Detection",
		Compose: func() []ui.Node {
			tabs, err := ui.NewTabGroup(
				[]ui.Tab{{ID: "tool-calls", Label: "Tool calls"}, {ID: "content", Label: "Content"}},
				map[string]ui.PanelFunc{
					"tool-calls": func() []ui.Node { return []ui.Node{ui.Prose{Markdown: "hash each call"}} },
					"content":    func() []ui.Node { return []ui.Node{ui.Prose{Markdown: "chunk the stream"}} },
				},
			)
			if err != nil {
				t.Fatal(err)
			}
			return []ui.Node{
				ui.NewDisclosure("Overview", "", 0, true,
					ui.Prose{Markdown: "Models get stuck."},
					ui.NewDisclosure("Details", "", 1, false,
						ui.Table{Headers: []string{"Signal", "Threshold"}, Rows: [][]string{{"tool | call", "5"}, {"chunk"}}},
					),
				),
				ui.NewDisclosure("Internals", "⚙️", 0, true, tabs),
				ui.Highlight{Variant: ui.HighlightTip, Title: "Resetting", Text: "line one\n\nline two"},
				ui.Diagram{Title: "Flow", Source: "graph LR\n  a --> b"},
				ui.CodeBlock{Lang: "md", Source: "```go\nx\n```"},
			}
		},
		Related: []ui.PageRef{{ID: "tool-scheduler", Label: "Tool Scheduler", Description: "Source of calls"}},
	}
}

func TestPageDefaultState(t *testing.T) {
	out := Page(loopDetection(t).Mount(nil), false)

	for _, want := range []string{
		"# Loop Detection\n\nDetecting repetitive tool calls\n",
		"- [Overview](#overview)\n- [Internals](#-internals)\n",
		"## Overview\n\nModels get stuck.\n",
		"### Details\n",
		"**Tool calls** · Content\n\nhash each call\n",
		"> **Tip: Resetting**\n>\n> line one\n>\n> line two\n",
		"*Flow*\n\n```mermaid\ngraph LR\n  a --> b\n```\n",
		"````md\n```go\nx\n```\n````\n",
		"## Related reading\n\n- [Tool Scheduler](tool-scheduler.md): Source of calls\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"| Signal", "chunk the stream"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("default state should not contain %q", unwanted)
		}
	}
}

func TestPageFollowsState(t *testing.T) {
	m := loopDetection(t).Mount(nil)
	m.Toggle("s0.1")
	m.SelectTab("s1.0", "content")
	out := Page(m, false)

	if !strings.Contains(out, "| Signal | Threshold |\n| --- | --- |\n| tool \\| call | 5 |\n| chunk |  |\n") {
		t.Errorf("table not rendered as expected:\n%s", out)
	}
	if !strings.Contains(out, "Tool calls · **Content**\n\nchunk the stream") {
		t.Errorf("selected tab not rendered:\n%s", out)
	}
}

func TestPageExpand(t *testing.T) {
	out := Page(loopDetection(t).Mount(nil), true)
	for _, want := range []string{"| Signal", "**Tool calls**\n\nhash each call", "**Content**\n\nchunk the stream"} {
		if !strings.Contains(out, want) {
			t.Errorf("expanded output missing %q", want)
		}
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct{ depth, want int }{{0, 2}, {1, 3}, {4, 6}, {9, 6}}
	for _, tt := range tests {
		if got := headingLevel(tt.depth); got != tt.want {
			t.Errorf("headingLevel(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestFence(t *testing.T) {
	tests := []struct {
		source, lang, want string
	}{
		{"x := 1", "go", "```go\nx := 1\n```\n"},
		{"a\n\n", "", "```\na\n```\n"},
		{"use ``` here", "md", "````md\nuse ``` here\n````\n"},
		{"y", "go extra", "```go\ny\n```\n"},
	}
	for _, tt := range tests {
		if got := Fence(tt.source, tt.lang); got != tt.want {
			t.Errorf("Fence(%q, %q) = %q, want %q", tt.source, tt.lang, got, tt.want)
		}
	}
}

func TestAnchorize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Overview", "overview"},
		{"Hello World", "hello-world"},
		{"run()", "run"},
	}
	for _, tt := range tests {
		got := anchorize(tt.input)
		if got != tt.want {
			t.Errorf("anchorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	reg := ui.NewRegistry()
	if err := reg.Register(loopDetection(t)); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(&ui.Page{Ref: ui.PageRef{ID: "tool-scheduler", Label: "Tool Scheduler"}}); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	n, err := NewDocGenerator(dir, "Agent CLI").Generate(reg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n != 2 {
		t.Errorf("wrote %d pages, want 2", n)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# Agent CLI",
		"| [Loop Detection](loop-detection.md) | Detecting repetitive tool calls | `tool-scheduler` |",
		"| [Tool Scheduler](tool-scheduler.md) |  |  |",
	} {
		if !strings.Contains(string(index), want) {
			t.Errorf("index missing %q:\n%s", want, index)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "tool-scheduler.md")); err != nil {
		t.Error(err)
	}
}
