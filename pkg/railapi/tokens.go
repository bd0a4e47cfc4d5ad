package railapi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/railtrack/railtrack/pkg/ctdf"
	"gopkg.in/yaml.v3"
)

// Session is the persisted login state of a client.
type Session struct {
	Token        string     `yaml:"token"`
	RefreshToken string     `yaml:"refreshToken"`
	User         *ctdf.User `yaml:"user,omitempty"`
}

type TokenStore interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

type MemoryTokenStore struct {
	mu      sync.Mutex
	session Session
}

func NewMemoryTokenStore(session Session) *MemoryTokenStore {
	return &MemoryTokenStore{session: session}
}

func (s *MemoryTokenStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session, nil
}

func (s *MemoryTokenStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.Save(Session{})
}

// FileTokenStore keeps the session in a YAML file readable only by the owner.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session Session

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return session, nil
	}
	if err != nil {
		return session, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := yaml.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}

	return session, nil
}

func (s *FileTokenStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(session)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
