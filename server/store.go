package server

import (
	"crypto/rand"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

// MapInfo describes a generated map visible to clients.
type MapInfo struct {
	ID          string    `json:"id"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Orientation string    `json:"orientation"`
	Tilesets    int       `json:"tilesets"`
	Points      int       `json:"points"`
	Seed        uint64    `json:"seed"`
	CreatedAt   time.Time `json:"createdAt"`
}

type mapRecord struct {
	MapInfo
	Document string
}

// Store is an in-memory store of generated maps with TTL-based expiry.
type Store struct {
	mu     sync.RWMutex
	maps   map[string]*mapRecord
	ttl    time.Duration
	now    func() time.Time
	stopCh chan struct{}
}

// NewStore starts a cleanup goroutine that runs every interval. Call Stop
// to release it.
func NewStore(ttl, interval time.Duration) *Store {
	s := &Store{
		maps:   make(map[string]*mapRecord),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go s.cleanupLoop(interval)
	return s
}

func (s *Store) Stop() {
	close(s.stopCh)
}

// Put stores a document and returns its assigned ID.
func (s *Store) Put(info MapInfo, doc string) MapInfo {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	info.ID = fmt.Sprintf("%x", b)
	info.CreatedAt = s.now()

	s.mu.Lock()
	s.maps[info.ID] = &mapRecord{MapInfo: info, Document: doc}
	s.mu.Unlock()

	return info
}

// Get returns the document for id, unless it is unknown or expired.
func (s *Store) Get(id string) (MapInfo, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.maps[id]
	if !ok || s.expired(rec) {
		return MapInfo{}, "", false
	}
	return rec.MapInfo, rec.Document, true
}

// List returns live maps, newest first.
func (s *Store) List() []MapInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]MapInfo, 0, len(s.maps))
	for _, rec := range s.maps {
		if !s.expired(rec) {
			result = append(result, rec.MapInfo)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *Store) expired(rec *mapRecord) bool {
	return s.now().Sub(rec.CreatedAt) >= s.ttl
}

// sweep drops expired maps and reports how many were removed.
func (s *Store) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, rec := range s.maps {
		if s.expired(rec) {
			log.Printf("[server] expired map %s (%dx%d, created %s ago)",
				id, rec.Width, rec.Height, s.now().Sub(rec.CreatedAt).Round(time.Second))
			delete(s.maps, id)
			removed++
		}
	}
	return removed
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}
