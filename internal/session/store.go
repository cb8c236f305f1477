// Package session holds loaded documents in memory for the lifetime of
// an exploration session. Nothing is persisted; a document lives until
// it is replaced, deleted or its TTL expires.
package session

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/xmlview/internal/xmltree"
)

// Session is one loaded document plus its load-time bookkeeping.
type Session struct {
	ID       string
	Filename string
	Doc      *xmltree.Document
	LoadedAt time.Time

	lastAccess time.Time
}

// Info is a JSON-safe summary of a session.
type Info struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	NodeCount int       `json:"node_count"`
	ByteSize  int       `json:"byte_size"`
	LoadedAt  time.Time `json:"loaded_at"`
}

func (s *Session) Info() Info {
	return Info{
		ID:        s.ID,
		Filename:  s.Filename,
		NodeCount: s.Doc.NodeCount,
		ByteSize:  s.Doc.ByteSize,
		LoadedAt:  s.LoadedAt,
	}
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	maxDocs  int
}

func NewStore(ttl time.Duration, maxDocs int) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		maxDocs:  maxDocs,
	}
}

// Put registers a session. When the store is full, the least recently
// used session is evicted first.
func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxDocs > 0 && len(s.sessions) >= s.maxDocs {
		if _, exists := s.sessions[sess.ID]; !exists {
			s.evictOldestLocked()
		}
	}
	sess.lastAccess = time.Now()
	s.sessions[sess.ID] = sess
}

// Get returns a session by ID, refreshing its TTL clock.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[id]
	if sess != nil {
		sess.lastAccess = time.Now()
	}
	return sess
}

// Delete removes a session. Returns false when no session had that ID.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// List returns session summaries, newest load first.
func (s *Store) List() []Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Info, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoadedAt.After(out[j].LoadedAt) })
	return out
}

// Cleanup removes sessions not accessed within the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastAccess) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// StartJanitor runs Cleanup periodically until ctx is cancelled.
func (s *Store) StartJanitor(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastAccess.Before(oldest) {
			oldestID = id
			oldest = sess.lastAccess
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

// ContentHashHex computes SHA-256 of content and returns the hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
