package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/travislint/travislint/internal/domain"
)

// Store is a file-based implementation of domain.ResultCache. Each entry is
// one JSON file named after its key.
type Store struct {
	dir string
}

// New creates a store under <projectPath>/.travislint/cache.
func New(projectPath string) *Store {
	return &Store{dir: Dir(projectPath)}
}

// Dir returns the cache directory used for projectPath.
func Dir(projectPath string) string {
	return filepath.Join(projectPath, ".travislint", "cache")
}

// Load reads a cached result. Returns (nil, nil) if no entry exists.
func (s *Store) Load(key string) (*domain.CachedResult, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no entry is not an error
		}
		return nil, err
	}

	var entry domain.CachedResult
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("reading cache entry %s: %w", key, err)
	}
	return &entry, nil
}

// Save writes an entry to disk, creating directories as needed.
func (s *Store) Save(entry *domain.CachedResult) error {
	if entry.Key == "" {
		return fmt.Errorf("cache entry has no key")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(entry.Key), data, 0644)
}

// Clear removes every cached entry.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
