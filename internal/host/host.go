// Package host is the page-host: it resolves page ids against a registry
// and owns the currently mounted page of one viewer.
package host

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// ErrPageNotFound is returned when an id does not resolve to a page.
var ErrPageNotFound = errors.New("page not found")

// ErrRelatedIndex is returned by Follow for an index outside the page's
// related panel.
var ErrRelatedIndex = errors.New("related index out of range")

// Host holds one viewer's current mount. Its methods serialize that viewer's
// events, so the ui components themselves never see concurrent calls.
type Host struct {
	mu      sync.Mutex
	reg     *ui.Registry
	home    string
	current *ui.Mount
}

// New creates a host with nothing mounted. home is the page shown by
// NavigateHome and the fallback after a reload removes the current page.
func New(reg *ui.Registry, home string) *Host {
	return &Host{reg: reg, home: home}
}

// Navigate mounts a fresh instance of the page with the given id. Unknown
// ids leave the current mount in place.
func (h *Host) Navigate(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.navigate(id)
}

// NavigateHome navigates to the home page.
func (h *Host) NavigateHome() error {
	return h.Navigate(h.home)
}

// Ensure shows id, keeping the current mount and its state when id is
// already mounted.
func (h *Host) Ensure(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ensure(id)
}

func (h *Host) ensure(id string) error {
	if h.current != nil && h.current.Page().ID() == id {
		return nil
	}
	return h.navigate(id)
}

// Update shows id as Ensure does and applies fn to its mount without
// letting another event in between.
func (h *Host) Update(id string, fn func(m *ui.Mount)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensure(id); err != nil {
		return err
	}
	fn(h.current)
	return nil
}

// View calls fn with the registry and the current mount while holding the
// host, so both describe the same moment. It reports false when nothing is
// mounted. fn must not call back into h.
func (h *Host) View(fn func(reg *ui.Registry, m *ui.Mount)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return false
	}
	fn(h.reg, h.current)
	return true
}

// navigate expects h.mu to be held. Mounts receive it as their navigator,
// so related-panel selections only happen through FollowRelated.
func (h *Host) navigate(id string) error {
	page, ok := h.reg.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrPageNotFound, id)
	}
	h.current = page.Mount(ui.NavigatorFunc(h.navigate))
	return nil
}

// Current returns the mounted page, or nil. Callers sharing the host
// between goroutines should use Render instead.
func (h *Host) Current() *ui.Mount {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// CurrentID returns the id of the mounted page, or "".
func (h *Host) CurrentID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return ""
	}
	return h.current.Page().ID()
}

// Render draws the current mount. It reports false when nothing is mounted.
func (h *Host) Render(r ui.Renderer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return false
	}
	h.current.Render(r)
	return true
}

// Toggle flips a section of the current mount.
func (h *Host) Toggle(nodeID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return false
	}
	return h.current.Toggle(nodeID)
}

// SelectTab selects a tab in the current mount.
func (h *Host) SelectTab(groupID, tabID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return false
	}
	return h.current.SelectTab(groupID, tabID)
}

// FollowRelated selects the i-th related entry of the current page.
func (h *Host) FollowRelated(i int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return errors.New("no page mounted")
	}
	return h.current.Related().Select(i)
}

// Follow shows id as Ensure does and selects its i-th related entry in the
// same step. The entry's target id is returned once i is in range, also
// when the target does not resolve.
func (h *Host) Follow(id string, i int) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensure(id); err != nil {
		return "", err
	}
	related := h.current.Related()
	refs := related.Refs()
	if i < 0 || i >= len(refs) {
		return "", fmt.Errorf("%w: %d of %d", ErrRelatedIndex, i, len(refs))
	}
	return refs[i].ID, related.Select(i)
}

// Registry returns the registry pages are resolved against.
func (h *Host) Registry() *ui.Registry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reg
}

// Home returns the home page id.
func (h *Host) Home() string { return h.home }

// Reload swaps the registry after content changed. The current page is
// remounted from the new content, or replaced by home if it disappeared.
func (h *Host) Reload(reg *ui.Registry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reg = reg
	if h.current == nil {
		return
	}
	if err := h.navigate(h.current.Page().ID()); err != nil {
		if err := h.navigate(h.home); err != nil {
			h.current = nil
		}
	}
}
