package content

import (
	"github.com/ziadkadry99/archdocs/internal/ui"
)

// buildPage converts a validated spec. The body is built once here so that
// construction errors surface at load time; Compose rebuilds it per mount.
func buildPage(spec *pageSpec) (*ui.Page, error) {
	if _, err := buildBlocks(spec.Body, 0); err != nil {
		return nil, err
	}

	related := make([]ui.PageRef, 0, len(spec.Related))
	for _, r := range spec.Related {
		related = append(related, ui.PageRef{ID: r.ID, Label: r.Label, Description: r.Description})
	}

	body := spec.Body
	return &ui.Page{
		Ref: ui.PageRef{
			ID:          spec.ID,
			Label:       spec.Label,
			Description: spec.Description,
		},
		Title: spec.Title,
		Icon:  spec.Icon,
		Compose: func() []ui.Node {
			nodes, _ := buildBlocks(body, 0)
			return nodes
		},
		Related: related,
	}, nil
}

// buildBlocks creates fresh nodes. depth counts enclosing sections.
func buildBlocks(blocks []blockSpec, depth int) ([]ui.Node, error) {
	nodes := make([]ui.Node, 0, len(blocks))
	for _, b := range blocks {
		n, err := buildBlock(b, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func buildBlock(b blockSpec, depth int) (ui.Node, error) {
	switch {
	case b.Section != nil:
		children, err := buildBlocks(b.Section.Children, depth+1)
		if err != nil {
			return nil, err
		}
		open := ui.DefaultOpen(depth)
		if b.Section.Open != nil {
			open = *b.Section.Open
		}
		return ui.NewDisclosure(b.Section.Title, b.Section.Icon, depth, open, children...), nil

	case b.Tabs != nil:
		tabs := make([]ui.Tab, 0, len(b.Tabs))
		panels := make(map[string]ui.PanelFunc, len(b.Tabs))
		for _, t := range b.Tabs {
			label := t.Label
			if label == "" {
				label = t.ID
			}
			tabs = append(tabs, ui.Tab{ID: t.ID, Label: label, Icon: t.Icon})
			children := t.Children
			if _, err := buildBlocks(children, depth); err != nil {
				return nil, err
			}
			panels[t.ID] = func() []ui.Node {
				nodes, _ := buildBlocks(children, depth)
				return nodes
			}
		}
		g, err := ui.NewTabGroup(tabs, panels)
		if err != nil {
			return nil, err
		}
		return g, nil

	case b.Prose != nil:
		return ui.Prose{Markdown: *b.Prose}, nil

	case b.Code != nil:
		return ui.CodeBlock{Source: b.Code.Source, Lang: b.Code.Lang, Title: b.Code.Title}, nil

	case b.Table != nil:
		return ui.Table{Title: b.Table.Title, Headers: b.Table.Headers, Rows: b.Table.Rows}, nil

	case b.Card != nil:
		return ui.Card{
			Title:       b.Card.Title,
			Icon:        b.Card.Icon,
			Description: b.Card.Description,
			Items:       b.Card.Items,
		}, nil

	case b.Highlight != nil:
		variant := ui.HighlightVariant(b.Highlight.Variant)
		if variant == "" {
			variant = ui.HighlightInfo
		}
		return ui.Highlight{Variant: variant, Title: b.Highlight.Title, Text: b.Highlight.Text}, nil

	default:
		return ui.Diagram{Title: b.Diagram.Title, Source: b.Diagram.Source}, nil
	}
}
