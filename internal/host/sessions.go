package host

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// DefaultSessionTTL is how long an idle view keeps its state.
const DefaultSessionTTL = 30 * time.Minute

// MaxViews bounds the views one session keeps. Opening another evicts the
// least recently used.
const MaxViews = 32

// Key addresses one view: a browser session and one page view (usually a
// browser tab) inside it. Each view has its own Host.
type Key struct {
	Session string
	View    string
}

type view struct {
	host     *Host
	lastSeen time.Time
}

type session struct {
	views map[string]*view
}

func (sess *session) evictOldest() {
	var oldest string
	var at time.Time
	for id, v := range sess.views {
		if oldest == "" || v.lastSeen.Before(at) {
			oldest, at = id, v.lastSeen
		}
	}
	delete(sess.views, oldest)
}

// Sessions keeps one Host per view of every viewer.
type Sessions struct {
	mu       sync.Mutex
	reg      *ui.Registry
	home     string
	ttl      time.Duration
	sessions map[string]*session
	now      func() time.Time
}

// NewSessions creates an empty session table. A non-positive ttl uses
// DefaultSessionTTL.
func NewSessions(reg *ui.Registry, home string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		reg:      reg,
		home:     home,
		ttl:      ttl,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Get returns the host for k. An empty or unknown session starts a new one,
// and an empty or unknown view starts a new view in the session; the
// returned key carries the ids actually used.
func (s *Sessions) Get(k Key) (Key, *Host) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	sess, ok := s.sessions[k.Session]
	if !ok || k.Session == "" {
		k.Session = uuid.NewString()
		sess = &session{views: make(map[string]*view)}
		s.sessions[k.Session] = sess
	}
	if v, ok := sess.views[k.View]; ok && k.View != "" {
		v.lastSeen = now
		return k, v.host
	}

	if len(sess.views) >= MaxViews {
		sess.evictOldest()
	}
	k.View = uuid.NewString()
	v := &view{host: New(s.reg, s.home), lastSeen: now}
	sess.views[k.View] = v
	return k, v.host
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Views returns the number of live views across all sessions.
func (s *Sessions) Views() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		n += len(sess.views)
	}
	return n
}

// Registry returns the registry new views start with.
func (s *Sessions) Registry() *ui.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg
}

// Reload swaps the registry for new views and every live one.
func (s *Sessions) Reload(reg *ui.Registry) {
	s.mu.Lock()
	s.reg = reg
	var hosts []*Host
	for _, sess := range s.sessions {
		for _, v := range sess.views {
			hosts = append(hosts, v.host)
		}
	}
	s.mu.Unlock()

	for _, h := range hosts {
		h.Reload(reg)
	}
}

// Sweep drops views idle for longer than the ttl, and sessions left without
// views. It returns how many views were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for sid, sess := range s.sessions {
		for vid, v := range sess.views {
			if v.lastSeen.Before(cutoff) {
				delete(sess.views, vid)
				removed++
			}
		}
		if len(sess.views) == 0 {
			delete(s.sessions, sid)
		}
	}
	return removed
}

// Run sweeps idle views until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context) {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("host: dropped %d idle views", n)
			}
		}
	}
}
