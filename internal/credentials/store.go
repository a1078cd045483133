// Package credentials persists the fallback bearer token between runs.
// The preferred credential home is the HTTP-only cookie held by the shared
// client's cookie jar; this store only covers backends that return the token
// in the login body instead.
package credentials

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const (
	fileName = "credentials.json"

	// tokenKey mirrors the storage key the browser dashboard used.
	tokenKey = "auth_token"
	// legacyKey was used by earlier releases and is cleared on removal.
	legacyKey = "token"
)

// Store is a file-backed token store. All methods are safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore builds a store rooted at dir. The directory is created lazily on
// the first Save.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, fileName)}
}

// Save persists the token under the primary key.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.read()
	values[tokenKey] = token
	return s.write(values)
}

// Load returns the stored token. The legacy key is honored on read so an
// upgrade does not log the operator out.
func (s *Store) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.read()
	if tok := values[tokenKey]; tok != "" {
		return tok, true
	}
	if tok := values[legacyKey]; tok != "" {
		return tok, true
	}
	return "", false
}

// Remove clears the stored token, including the legacy key.
func (s *Store) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.read()
	delete(values, tokenKey)
	delete(values, legacyKey)
	if len(values) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return s.write(values)
}

func (s *Store) read() map[string]string {
	values := map[string]string{}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return values
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return map[string]string{}
	}
	return values
}

func (s *Store) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
