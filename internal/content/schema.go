package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// pageSpec is the YAML form of one page.
type pageSpec struct {
	ID          string      `yaml:"id"`
	Label       string      `yaml:"label"`
	Description string      `yaml:"description"`
	Title       string      `yaml:"title"`
	Icon        string      `yaml:"icon"`
	Order       int         `yaml:"order"`
	Body        []blockSpec `yaml:"body"`
	Related     []refSpec   `yaml:"related"`
}

type refSpec struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// blockSpec is one body element. Exactly one field must be set.
type blockSpec struct {
	Section   *sectionSpec   `yaml:"section"`
	Tabs      []tabSpec      `yaml:"tabs"`
	Prose     *string        `yaml:"prose"`
	Code      *codeSpec      `yaml:"code"`
	Table     *tableSpec     `yaml:"table"`
	Card      *cardSpec      `yaml:"card"`
	Highlight *highlightSpec `yaml:"highlight"`
	Diagram   *diagramSpec   `yaml:"diagram"`
}

type sectionSpec struct {
	Title    string      `yaml:"title"`
	Icon     string      `yaml:"icon"`
	Open     *bool       `yaml:"open"`
	Children []blockSpec `yaml:"children"`
}

type tabSpec struct {
	ID       string      `yaml:"id"`
	Label    string      `yaml:"label"`
	Icon     string      `yaml:"icon"`
	Children []blockSpec `yaml:"children"`
}

type codeSpec struct {
	Lang   string `yaml:"lang"`
	Title  string `yaml:"title"`
	Source string `yaml:"source"`
}

type tableSpec struct {
	Title   string     `yaml:"title"`
	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
}

type cardSpec struct {
	Title       string   `yaml:"title"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"`
	Items       []string `yaml:"items"`
}

type highlightSpec struct {
	Variant string `yaml:"variant"`
	Title   string `yaml:"title"`
	Text    string `yaml:"text"`
}

type diagramSpec struct {
	Title  string `yaml:"title"`
	Source string `yaml:"source"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// kinds lists the block kinds that are set.
func (b blockSpec) kinds() []string {
	var k []string
	if b.Section != nil {
		k = append(k, "section")
	}
	if b.Tabs != nil {
		k = append(k, "tabs")
	}
	if b.Prose != nil {
		k = append(k, "prose")
	}
	if b.Code != nil {
		k = append(k, "code")
	}
	if b.Table != nil {
		k = append(k, "table")
	}
	if b.Card != nil {
		k = append(k, "card")
	}
	if b.Highlight != nil {
		k = append(k, "highlight")
	}
	if b.Diagram != nil {
		k = append(k, "diagram")
	}
	return k
}

// validate checks the parts of a page that the ui constructors do not.
func (p *pageSpec) validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !slugPattern.MatchString(p.ID) {
		return fmt.Errorf("id %q must be lowercase letters, digits, '-' or '_'", p.ID)
	}
	if p.Label == "" {
		p.Label = p.Title
	}
	if p.Title == "" {
		p.Title = p.Label
	}
	if p.Title == "" {
		return fmt.Errorf("page %q needs a title or label", p.ID)
	}
	for i, r := range p.Related {
		if r.ID == "" {
			return fmt.Errorf("related[%d]: id is required", i)
		}
	}
	return validateBlocks(p.Body, "body")
}

func validateBlocks(blocks []blockSpec, path string) error {
	for i, b := range blocks {
		at := fmt.Sprintf("%s[%d]", path, i)
		k := b.kinds()
		switch len(k) {
		case 0:
			return fmt.Errorf("%s: empty block", at)
		case 1:
		default:
			return fmt.Errorf("%s: block sets more than one kind (%s)", at, strings.Join(k, ", "))
		}
		switch {
		case b.Section != nil:
			if b.Section.Title == "" {
				return fmt.Errorf("%s.section: title is required", at)
			}
			if err := validateBlocks(b.Section.Children, at+".section.children"); err != nil {
				return err
			}
		case b.Tabs != nil:
			for j, t := range b.Tabs {
				if !slugPattern.MatchString(t.ID) {
					return fmt.Errorf("%s.tabs[%d]: invalid tab id %q", at, j, t.ID)
				}
				if err := validateBlocks(t.Children, fmt.Sprintf("%s.tabs[%d].children", at, j)); err != nil {
					return err
				}
			}
		case b.Highlight != nil:
			if v := b.Highlight.Variant; v != "" && !ui.HighlightVariant(v).Valid() {
				return fmt.Errorf("%s.highlight: unknown variant %q", at, v)
			}
		}
	}
	return nil
}
