package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

var ErrEmptyToken = errors.New("session token is empty")

// FileStore persists the session as JSON at a single path so the token
// survives between CLI invocations. The file is read once at open.
type FileStore struct {
	path string

	mu      sync.RWMutex
	session user.Session
}

var _ user.SessionStore = (*FileStore)(nil)

// OpenFileStore loads path if it exists. A missing file is an empty session;
// an unreadable one is an error.
func OpenFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("session file path is required")
	}

	store := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return store, nil
	case err != nil:
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return store, nil
	}
	if err := sonic.Unmarshal(raw, &store.session); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", path, err)
	}
	return store, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.TrimSpace(s.session.Token)
}

func (s *FileStore) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.Valid() {
		return user.User{}, false
	}
	return s.session.User, true
}

func (s *FileStore) Save(session user.Session) error {
	if !session.Valid() {
		return ErrEmptyToken
	}
	raw, err := sonic.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, fileMode); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session file: %w", err)
	}
	s.session = session
	return nil
}

// Clear forgets the session and removes the file. Clearing an absent session
// is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = user.Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
