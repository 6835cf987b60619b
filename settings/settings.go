// Package settings remembers the last successful generation so it can be
// replayed with a fresh seed.
package settings

import (
	"encoding/json"
	"log"
	"time"

	"github.com/automoto/tilegen/config"
	"github.com/automoto/tilegen/generator"
	"github.com/quasilyte/gdata"
)

// LastRun is the data stored on disk after a successful generate.
type LastRun struct {
	Request generator.Request `json:"request"`
	Seed    uint64            `json:"seed"`
	Output  string            `json:"output"`
	SavedAt time.Time         `json:"savedAt"`
}

// ItemStore is the subset of *gdata.Manager the store needs.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store reads and writes LastRun. A Store without a backend is a no-op.
type Store struct {
	items ItemStore
	key   string
}

// Open initializes the gdata manager for settings storage. On failure it
// logs a warning and returns a no-op store along with the error.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: config.Persistence.AppName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return &Store{key: config.Persistence.LastRequestKey}, err
	}
	return NewStore(m), nil
}

func NewStore(items ItemStore) *Store {
	return &Store{items: items, key: config.Persistence.LastRequestKey}
}

// LoadLastRun returns nil, nil when nothing has been saved yet.
func (s *Store) LoadLastRun() (*LastRun, error) {
	if s.items == nil {
		return nil, nil
	}

	data, err := s.items.LoadItem(s.key)
	if err != nil {
		log.Printf("Warning: Could not load last run: %v", err)
		return nil, err
	}
	if data == nil {
		// No saved run yet
		return nil, nil
	}

	var run LastRun
	if err := json.Unmarshal(data, &run); err != nil {
		log.Printf("Warning: Could not parse saved run: %v", err)
		return nil, err
	}
	return &run, nil
}

// SaveLastRun overwrites the stored run.
func (s *Store) SaveLastRun(run *LastRun) error {
	if s.items == nil {
		return nil
	}

	data, err := json.Marshal(run)
	if err != nil {
		log.Printf("Warning: Could not serialize last run: %v", err)
		return err
	}

	if err := s.items.SaveItem(s.key, data); err != nil {
		log.Printf("Warning: Could not save last run: %v", err)
		return err
	}
	return nil
}
