package settings

import (
	"errors"
	"eshop-client/internal/domain"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

const (
	KeyAuthAccessToken = "AUTH_ACCESS_TOKEN"
	KeyUseMocks        = "USE_MOCKS"
	KeyUserID          = "USER_ID"
)

// FileStore keeps settings in memory and persists them as a dotenv file.
type FileStore struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

var _ domain.SettingsService = (*FileStore)(nil)

// Open loads path if it exists. A missing file yields defaults; useMocks is
// the default until the file says otherwise.
func Open(path string, useMocks bool) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: map[string]string{KeyUseMocks: strconv.FormatBool(useMocks)},
	}
	if path == "" {
		return s, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	for k, v := range values {
		s.values[k] = v
	}
	return s, nil
}

func (s *FileStore) get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *FileStore) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, key)
		return
	}
	s.values[key] = value
}

func (s *FileStore) AuthAccessToken() string { return s.get(KeyAuthAccessToken) }

func (s *FileStore) SetAuthAccessToken(token string) { s.set(KeyAuthAccessToken, token) }

func (s *FileStore) UseMocks() bool {
	v, err := strconv.ParseBool(s.get(KeyUseMocks))
	return err == nil && v
}

func (s *FileStore) SetUseMocks(v bool) { s.set(KeyUseMocks, strconv.FormatBool(v)) }

func (s *FileStore) UserID() string { return s.get(KeyUserID) }

func (s *FileStore) SetUserID(id string) { s.set(KeyUserID, id) }

// Save writes the current values. A store opened without a path keeps
// everything in memory.
func (s *FileStore) Save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	snapshot := make(map[string]string, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	s.mu.RUnlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := godotenv.Write(snapshot, s.path); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return os.Chmod(s.path, 0o600)
}
