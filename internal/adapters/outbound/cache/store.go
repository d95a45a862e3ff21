package cache

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/op/go-logging"

	"github.com/rdc-cli/rdc/internal/domain"
)

var log = logging.MustGetLogger("rdc.cache")

// Store wraps a domain.DrawSource and keeps the rows of every capture file it
// has loaded. A file is reloaded when its size or modification time changes.
// Refs that are not regular files, such as "-", always go to the wrapped
// source. Cached rows are shared between callers and must not be modified.
type Store struct {
	next domain.DrawSource

	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	size    int64
	modTime time.Time
	rows    []map[string]any
}

// New creates a Store in front of next.
func New(next domain.DrawSource) *Store {
	return &Store{
		next:    next,
		entries: make(map[string]entry),
	}
}

func (s *Store) LoadDraws(ctx context.Context, ref string) ([]map[string]any, error) {
	info, err := os.Stat(ref)
	if err != nil || !info.Mode().IsRegular() {
		return s.next.LoadDraws(ctx, ref)
	}

	s.mu.Lock()
	e, ok := s.entries[ref]
	s.mu.Unlock()
	if ok && !e.isInvalidated(info) {
		log.Debugf("cache hit for %s", ref)
		return e.rows, nil
	}

	rows, err := s.next.LoadDraws(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[ref] = entry{size: info.Size(), modTime: info.ModTime(), rows: rows}
	s.mu.Unlock()
	return rows, nil
}

// Invalidate drops the cached rows of ref.
func (s *Store) Invalidate(ref string) {
	s.mu.Lock()
	delete(s.entries, ref)
	s.mu.Unlock()
}

// Len returns the number of cached captures.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (e entry) isInvalidated(info os.FileInfo) bool {
	return e.size != info.Size() || !e.modTime.Equal(info.ModTime())
}
