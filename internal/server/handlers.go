package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/ziadkadry99/archdocs/internal/graph"
	"github.com/ziadkadry99/archdocs/internal/host"
	"github.com/ziadkadry99/archdocs/internal/site"
	"github.com/ziadkadry99/archdocs/internal/ui"
)

// viewer returns the host of the view named in the request, issuing a
// session cookie when the request did not carry a known one. The returned
// key holds the view id actually used.
func (s *Server) viewer(w http.ResponseWriter, r *http.Request) (host.Key, *host.Host) {
	var k host.Key
	if c, err := r.Cookie(SessionCookie); err == nil {
		k.Session = c.Value
	}
	k.View = r.URL.Query().Get(site.ViewParam)

	got, h := s.sessions.Get(k)
	if got.Session != k.Session {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    got.Session,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return got, h
}

func pagePath(id string) string {
	return site.LiveLinks.Page(id)
}

func viewPath(id, view string) string {
	return site.LiveLinks.ForView(view).Page(id)
}

func (s *Server) home() string {
	if s.cfg.Home != "" {
		return s.cfg.Home
	}
	if ids := s.sessions.Registry().IDs(); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, pagePath(s.home()), http.StatusFound)
}

// handlePage shows a page in the requested view. A request without a live
// view gets a new one and is redirected to its address, so reloads find the
// same state.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	k, h := s.viewer(w, r)

	if err := h.Ensure(pageID); err != nil {
		s.notFound(w, pageID, err)
		return
	}
	if k.View != r.URL.Query().Get(site.ViewParam) {
		http.Redirect(w, r, viewPath(pageID, k.View), http.StatusFound)
		return
	}
	s.renderCurrent(w, h, k.View)
}

func (s *Server) renderCurrent(w http.ResponseWriter, h *host.Host, view string) {
	var (
		buf    bytes.Buffer
		pageID string
		err    error
	)
	ok := h.View(func(reg *ui.Registry, m *ui.Mount) {
		pageID = m.Page().ID()
		err = s.shell.Render(&buf, site.View{
			Mode:   site.ModeLive,
			Page:   m.Page(),
			Nav:    site.BuildNav(reg, s.home()),
			Home:   s.home(),
			ViewID: view,
			Draw:   func(r ui.Renderer) bool { m.Render(r); return true },
		})
	})
	if !ok {
		http.Error(w, "no page mounted", http.StatusInternalServerError)
		return
	}
	if err != nil {
		log.Printf("server: rendering %s: %v", pageID, err)
		http.Error(w, "rendering page failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) notFound(w http.ResponseWriter, id string, err error) {
	if !errors.Is(err, host.ErrPageNotFound) {
		log.Printf("server: %v", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := s.shell.NotFound(w, id, s.home()); err != nil {
		log.Printf("server: rendering not-found page: %v", err)
	}
}

// handleToggle flips a section and sends the browser back to it. Unknown
// node ids are ignored.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	nodeID := chi.URLParam(r, "nodeID")
	k, h := s.viewer(w, r)

	if err := h.Update(pageID, func(m *ui.Mount) { m.Toggle(nodeID) }); err != nil {
		s.notFound(w, pageID, err)
		return
	}
	http.Redirect(w, r, viewPath(pageID, k.View)+"#sec-"+url.PathEscape(nodeID), http.StatusSeeOther)
}

// handleSelectTab selects a tab. Unknown group or tab ids leave the page
// unchanged.
func (s *Server) handleSelectTab(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	groupID := chi.URLParam(r, "groupID")
	tabID := chi.URLParam(r, "tabID")
	k, h := s.viewer(w, r)

	if err := h.Update(pageID, func(m *ui.Mount) { m.SelectTab(groupID, tabID) }); err != nil {
		s.notFound(w, pageID, err)
		return
	}
	http.Redirect(w, r, viewPath(pageID, k.View)+"#tabs-"+url.PathEscape(groupID), http.StatusSeeOther)
}

// handleRelated follows an entry of the page's related panel through the
// view's host.
func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	k, h := s.viewer(w, r)

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid related index", http.StatusBadRequest)
		return
	}

	target, err := h.Follow(pageID, index)
	switch {
	case errors.Is(err, host.ErrRelatedIndex):
		http.Error(w, "related index out of range", http.StatusNotFound)
	case err != nil:
		if target == "" {
			target = pageID
		}
		s.notFound(w, target, err)
	default:
		http.Redirect(w, r, viewPath(target, k.View), http.StatusSeeOther)
	}
}

// pageSummary is the JSON form of a registered page.
type pageSummary struct {
	ID          string       `json:"id"`
	Label       string       `json:"label,omitempty"`
	Description string       `json:"description,omitempty"`
	Title       string       `json:"title,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	Related     []ui.PageRef `json:"related"`
}

func summarize(reg *ui.Registry) []pageSummary {
	pages := reg.Pages()
	out := make([]pageSummary, 0, len(pages))
	for _, p := range pages {
		related := p.Related
		if related == nil {
			related = []ui.PageRef{}
		}
		out = append(out, pageSummary{
			ID:          p.ID(),
			Label:       p.Ref.Label,
			Description: p.Ref.Description,
			Title:       p.Title,
			Icon:        p.Icon,
			Related:     related,
		})
	}
	return out
}

// graphResponse is the JSON body of /api/graph.
type graphResponse struct {
	Home      string              `json:"home"`
	Adjacency map[string][]string `json:"adjacency"`
	Audit     graph.Report        `json:"audit"`
}

func (s *Server) handleAPIPages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, summarize(s.sessions.Registry()))
}

func (s *Server) handleAPIGraph(w http.ResponseWriter, r *http.Request) {
	reg := s.sessions.Registry()
	writeJSON(w, graphResponse{
		Home:      s.home(),
		Adjacency: reg.Adjacency(),
		Audit:     graph.Audit(reg, s.home()),
	})
}

func (s *Server) handleAPISearchIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, site.BuildSearchIndex(s.sessions.Registry(), site.LiveLinks.Page))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}
