// Package stats persists the pruned-weight counters across sessions.
package stats

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// Stats holds persistent statistics.
type Stats struct {
	PrunedLifetime int64 `json:"pruned_lifetime"` // total weight deleted across all sessions
}

// Manager handles loading and saving stats with debounced writes.
type Manager struct {
	path         string
	stats        Stats
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a stats manager using the default file location.
func NewManager() *Manager {
	return &Manager{
		path:         defaultPath(),
		saveDuration: 2 * time.Second,
	}
}

// NewManagerAt creates a stats manager backed by the given file.
func NewManagerAt(path string) *Manager {
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second,
	}
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".treescope-stats.json"
	}
	return filepath.Join(home, ".treescope", "stats.json")
}

// Load loads stats from disk. A missing file starts fresh.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.stats = Stats{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &m.stats)
}

// Save writes the stats to disk immediately.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return err
	}
	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// PrunedLifetime returns the lifetime pruned weight.
func (m *Manager) PrunedLifetime() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.PrunedLifetime
}

// AddPruned adds to the lifetime pruned counter and schedules a debounced
// save.
func (m *Manager) AddPruned(weight int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.PrunedLifetime += weight
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // background save, errors are not actionable
		}
	})
}

// Close flushes any pending save.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
