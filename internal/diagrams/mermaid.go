// Package diagrams builds Mermaid sources for generated pages.
package diagrams

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// SiteMap returns a Mermaid "graph LR" of the related-pages graph. Targets
// that are not registered are drawn with a dashed outline.
func SiteMap(reg *ui.Registry) string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	for _, p := range reg.Pages() {
		label := p.Ref.Label
		if label == "" {
			label = p.Ref.ID
		}
		b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeID(p.Ref.ID), escapeMermaid(label)))
	}

	missing := make(map[string]bool)
	for _, p := range reg.Pages() {
		for _, ref := range p.Related {
			if _, ok := reg.Lookup(ref.ID); !ok {
				missing[ref.ID] = true
			}
			b.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeID(p.Ref.ID), sanitizeID(ref.ID)))
		}
	}

	if len(missing) > 0 {
		ids := make([]string, 0, len(missing))
		for id := range missing {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		b.WriteString("    classDef missing stroke-dasharray: 5 5\n")
		for _, id := range ids {
			b.WriteString(fmt.Sprintf("    %s[\"%s?\"]:::missing\n", sanitizeID(id), escapeMermaid(id)))
		}
	}

	return b.String()
}

// Neighborhood returns a Mermaid graph of one page with its outgoing and
// incoming references.
func Neighborhood(id string, outgoing, incoming []string) string {
	var b strings.Builder
	b.WriteString("graph LR\n")
	self := sanitizeID(id)
	b.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", self, escapeMermaid(id)))
	for _, to := range outgoing {
		b.WriteString(fmt.Sprintf("    %s --> %s[\"%s\"]\n", self, sanitizeID(to), escapeMermaid(to)))
	}
	for _, from := range incoming {
		b.WriteString(fmt.Sprintf("    %s[\"%s\"] -.-> %s\n", sanitizeID(from), escapeMermaid(from), self))
	}
	return b.String()
}

// sanitizeID converts a page id into a safe mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		".", "_",
		"-", "_",
		" ", "_",
		"(", "_",
		")", "_",
		"[", "_",
		"]", "_",
		"{", "_",
		"}", "_",
		":", "_",
	)
	// The prefix keeps ids clear of flowchart keywords such as "end".
	return "p_" + replacer.Replace(s)
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
