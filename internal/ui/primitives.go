package ui

// Prose is a block of markdown text.
type Prose struct {
	Markdown string
}

// Render implements Node.
func (p Prose) Render(r Renderer) { r.Prose(p) }

// CodeBlock is a source listing. Lang is a cosmetic hint for highlighting.
type CodeBlock struct {
	Source string
	Lang   string
	Title  string
}

// Render implements Node.
func (c CodeBlock) Render(r Renderer) { r.Code(c) }

// Table is a comparison table. Rows shorter than Headers are padded by
// renderers; longer rows are truncated.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Render implements Node.
func (t Table) Render(r Renderer) { r.Table(t) }

// Card summarizes one module of the documented project.
type Card struct {
	Title       string
	Icon        string
	Description string
	Items       []string
}

// Render implements Node.
func (c Card) Render(r Renderer) { r.Card(c) }

// HighlightVariant selects the styling of a Highlight box.
type HighlightVariant string

const (
	HighlightInfo    HighlightVariant = "info"
	HighlightTip     HighlightVariant = "tip"
	HighlightWarning HighlightVariant = "warning"
)

// Valid reports whether v is a known variant.
func (v HighlightVariant) Valid() bool {
	switch v {
	case HighlightInfo, HighlightTip, HighlightWarning:
		return true
	}
	return false
}

// Highlight is a call-out box.
type Highlight struct {
	Variant HighlightVariant
	Title   string
	Text    string
}

// Render implements Node.
func (h Highlight) Render(r Renderer) { r.Highlight(h) }

// Diagram holds an opaque diagram description (Mermaid source). Its syntax
// is never checked here.
type Diagram struct {
	Title  string
	Source string
}

// Render implements Node.
func (d Diagram) Render(r Renderer) { r.Diagram(d) }
