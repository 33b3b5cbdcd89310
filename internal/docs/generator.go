package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// DocGenerator writes every page as a Markdown file.
type DocGenerator struct {
	OutputDir string
	Title     string
	// Expand writes collapsed sections and inactive tabs too.
	Expand bool
}

// NewDocGenerator creates a DocGenerator that writes to the given output directory.
func NewDocGenerator(outputDir, title string) *DocGenerator {
	return &DocGenerator{OutputDir: outputDir, Title: title}
}

// Generate writes {OutputDir}/{id}.md for each page in its default state
// plus an index.md. Returns the number of pages written.
func (g *DocGenerator) Generate(reg *ui.Registry) (int, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	pages := reg.Pages()
	for _, p := range pages {
		md := Page(p.Mount(nil), g.Expand)
		outPath := filepath.Join(g.OutputDir, p.ID()+".md")
		if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
			return 0, fmt.Errorf("writing %s: %w", outPath, err)
		}
	}
	if err := g.GenerateIndex(reg); err != nil {
		return 0, err
	}
	return len(pages), nil
}

// GenerateIndex renders an index.md listing all pages.
func (g *DocGenerator) GenerateIndex(reg *ui.Registry) error {
	tmpl, err := template.New("index").Funcs(templateFuncs).Parse(indexTemplate)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(g.OutputDir, "index.md"))
	if err != nil {
		return err
	}
	defer f.Close()

	data := struct {
		Title string
		Pages []*ui.Page
	}{
		Title: g.Title,
		Pages: reg.Pages(),
	}
	return tmpl.Execute(f, data)
}

const indexTemplate = `# {{ .Title }}

| Page | Description | Related |
|------|-------------|---------|
{{ range .Pages }}| [{{ title . }}]({{ mdlink .Ref.ID }}) | {{ oneline .Ref.Description }} | {{ related . }} |
{{ end }}`

// templateFuncs provides helper functions for the markdown templates.
var templateFuncs = template.FuncMap{
	"mdlink": func(id string) string {
		return id + ".md"
	},
	"oneline": func(s string) string {
		s = strings.ReplaceAll(s, "\n", " ")
		s = strings.ReplaceAll(s, "\r", "")
		return cell(strings.TrimSpace(s))
	},
	"title": func(p *ui.Page) string {
		switch {
		case p.Title != "":
			return p.Title
		case p.Ref.Label != "":
			return p.Ref.Label
		}
		return p.ID()
	},
	"related": func(p *ui.Page) string {
		ids := make([]string, 0, len(p.Related))
		for _, ref := range p.Related {
			ids = append(ids, "`"+ref.ID+"`")
		}
		return strings.Join(ids, ", ")
	},
}

// anchorize converts a heading into a GitHub-style markdown anchor.
func anchorize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	var out strings.Builder
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			out.WriteRune(c)
		}
	}
	return out.String()
}
