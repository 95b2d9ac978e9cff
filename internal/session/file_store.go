package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// record mirrors a browser cookie: name, value, path and expiry
type record struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Path      string    `json:"path"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileStore keeps the token in a 0600 JSON file
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileStore creates a store backed by the file at path. The directory
// is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// DefaultFilePath returns ~/.config/jobby/session.json, falling back to
// the working directory when no config dir is known.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "jobby-session.json"
	}
	return filepath.Join(dir, "jobby", "session.json")
}

func (s *FileStore) Token(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read session file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", false, fmt.Errorf("parse session file: %w", err)
	}
	if rec.Name != TokenKey || rec.Value == "" {
		return "", false, nil
	}
	if !s.now().Before(rec.ExpiresAt) {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("remove expired session: %w", err)
		}
		return "", false, nil
	}
	return rec.Value, true, nil
}

func (s *FileStore) SetToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	rec := record{
		Name:      TokenKey,
		Value:     token,
		Path:      "/",
		ExpiresAt: s.now().Add(ttl).UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
