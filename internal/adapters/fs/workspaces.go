// Package fs implements workspace slot directories on the local filesystem.
package fs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultRoot is the workspace root used when no --workdir flag is given.
const DefaultRoot = ".cid-work"

// Manager implements ports.Workspaces. Each lock key gets one directory
// under the root, with numbered slot directories inside it.
type Manager struct {
	root string
}

// NewManager creates a Manager rooted at DefaultRoot until SetRoot overrides
// it.
func NewManager() *Manager {
	return &Manager{root: DefaultRoot}
}

// SetRoot changes the workspace root directory.
func (m *Manager) SetRoot(root string) {
	m.root = root
}

// Root returns the current workspace root.
func (m *Manager) Root() string {
	return m.root
}

// Allocate creates the backing directory for a slot and returns its path.
func (m *Manager) Allocate(key domain.LockKey, index int) (string, error) {
	dir := m.slotDir(key, index)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", zerr.Wrap(err, "failed to create workspace directory")
	}
	return dir, nil
}

// Remove reclaims the backing directory of an evicted slot.
func (m *Manager) Remove(key domain.LockKey, index int) error {
	if err := os.RemoveAll(m.slotDir(key, index)); err != nil {
		return zerr.Wrap(err, "failed to remove workspace directory")
	}
	return nil
}

func (m *Manager) slotDir(key domain.LockKey, index int) string {
	return filepath.Join(m.root, keyDir(key), strconv.Itoa(index))
}

// keyDir flattens a lock key into a single path segment. The hash suffix
// keeps distinct keys apart even when flattening collides ("a/b-c" vs
// "a-b/c").
func keyDir(key domain.LockKey) string {
	slug := strings.ReplaceAll(key.String(), "/", "-")
	sum := xxhash.Sum64String(key.String())
	return slug + "-" + strconv.FormatUint(sum, 16)
}
