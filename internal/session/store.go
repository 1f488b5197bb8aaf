package session

import (
	"os"
	"path/filepath"
	"sync"

	jsonpkg "openpims-golang/gateway/internal/pkg/json"
)

// Store persists the session record as a JSON file under the data
// directory. At most one record exists; login replaces it wholesale and
// logout removes the file.
type Store struct {
	mu       sync.RWMutex
	filePath string
}

func NewStore(dataDir string) *Store {
	return &Store{filePath: filepath.Join(dataDir, "session.json")}
}

// Load returns the persisted record, or nil if none exists.
func (s *Store) Load() (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var rec Record
	if err := jsonpkg.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) Save(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}

	data, err := jsonpkg.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	// The file holds the MAC secret; keep it owner-readable only.
	return os.WriteFile(s.filePath, data, 0o600)
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
