// Package content turns YAML page definitions into ui pages. The pages the
// site ships with are embedded from builtin/.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultInclude matches every YAML file below the content directory.
var DefaultInclude = []string{"**/*.yaml", "**/*.yml"}

// Options selects where pages are read from. An empty Dir means the
// embedded pages.
type Options struct {
	Dir     string
	Include []string
	Exclude []string
}

// Load reads pages according to opts and registers them in order.
func Load(opts Options) (*ui.Registry, error) {
	if opts.Dir == "" {
		return Builtin()
	}
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("accessing content dir %s: %w", opts.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", opts.Dir)
	}
	return LoadFS(os.DirFS(opts.Dir), opts.Include, opts.Exclude)
}

// Builtin loads the embedded pages.
func Builtin() (*ui.Registry, error) {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, nil, nil)
}

// LoadFS reads every page file in fsys matched by include and not by
// exclude. Pages are registered by their order field, then by file name.
func LoadFS(fsys fs.FS, include, exclude []string) (*ui.Registry, error) {
	files, err := discover(fsys, include, exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no page files found")
	}

	type loaded struct {
		file  string
		order int
		page  *ui.Page
	}
	var all []loaded
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		spec, err := decode(name, data)
		if err != nil {
			return nil, err
		}
		page, err := buildPage(spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		all = append(all, loaded{file: name, order: spec.Order, page: page})
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].order != all[j].order {
			return all[i].order < all[j].order
		}
		return all[i].file < all[j].file
	})

	reg := ui.NewRegistry()
	for _, l := range all {
		if err := reg.Register(l.page); err != nil {
			return nil, fmt.Errorf("%s: %w", l.file, err)
		}
	}
	return reg, nil
}

// Parse decodes a single page definition.
func Parse(name string, data []byte) (*ui.Page, error) {
	spec, err := decode(name, data)
	if err != nil {
		return nil, err
	}
	page, err := buildPage(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return page, nil
}

func decode(name string, data []byte) (*pageSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec pageSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty page file", name)
		}
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &spec, nil
}

// discover returns the matching page files in lexical order.
func discover(fsys fs.FS, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || excluded(m, exclude) || !isPageFile(m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(p, path.Base(name)); err == nil && ok {
			return true
		}
	}
	return false
}

func isPageFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
