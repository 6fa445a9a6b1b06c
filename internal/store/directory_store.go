package store

import (
	"path/filepath"
	"sync"

	"confide/internal/domain"
)

const directoryFile = "directory.json"

// DirectoryFileStore caches resolved peer profiles so repeated sends do not
// hit the relay for every message. Entries go stale when a peer regenerates
// keys; DirectoryService.Refresh overwrites them.
type DirectoryFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewDirectoryFileStore returns a directory cache rooted at dir.
func NewDirectoryFileStore(dir string) *DirectoryFileStore {
	return &DirectoryFileStore{dir: dir}
}

// SaveProfile upserts a peer profile in the cache.
func (s *DirectoryFileStore) SaveProfile(profile domain.AccountProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[domain.UserID]domain.AccountProfile)
	path := filepath.Join(s.dir, directoryFile)
	if err := readJSON(path, &m); err != nil {
		return err
	}
	m[profile.UserID] = profile
	return writeJSON(path, m, 0o600)
}

// LoadProfile returns the cached profile for user, if any.
func (s *DirectoryFileStore) LoadProfile(
	user domain.UserID,
) (domain.AccountProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[domain.UserID]domain.AccountProfile)
	if err := readJSON(filepath.Join(s.dir, directoryFile), &m); err != nil {
		return domain.AccountProfile{}, false, err
	}
	p, ok := m[user]
	return p, ok, nil
}

// DeleteProfile drops a cached profile, forcing the next resolve to go to
// the relay.
func (s *DirectoryFileStore) DeleteProfile(user domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[domain.UserID]domain.AccountProfile)
	path := filepath.Join(s.dir, directoryFile)
	if err := readJSON(path, &m); err != nil {
		return err
	}
	delete(m, user)
	return writeJSON(path, m, 0o600)
}

// Compile-time assertion that DirectoryFileStore implements domain.DirectoryStore.
var _ domain.DirectoryStore = (*DirectoryFileStore)(nil)
