// Package storage provides the durable local stores for the session's bearer
// token. Both backends hold exactly one entry under a fixed key.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/scoretalk/scoretalk-client/internal/core/ports"
)

// tokenFile is the on-disk shape: a single fixed-name entry.
type tokenFile struct {
	AccessToken string `json:"access_token"`
}

// FileStore persists the token in a JSON file so login state survives
// restarts. The file is created with 0600; its directory is created on demand.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.TokenStore = (*FileStore)(nil)

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: token file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage: create token dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load returns the stored token, or an empty string when none has been saved.
func (s *FileStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: read token file: %w", err)
	}

	var f tokenFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("storage: decode token file: %w", err)
	}
	return f.AccessToken, nil
}

func (s *FileStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(tokenFile{AccessToken: token}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("storage: write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove token file: %w", err)
	}
	return nil
}
