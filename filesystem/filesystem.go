// Package filesystem holds the afero backend every file anicat touches goes through.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active backend.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Use swaps the backend for fs and returns a function that restores the previous one.
func Use(fs afero.Fs) (restore func()) {
	mu.Lock()
	previous := backend
	backend = afero.Afero{Fs: fs}
	mu.Unlock()

	return func() {
		mu.Lock()
		backend = previous
		mu.Unlock()
	}
}

// SetOsFs switches back to the real filesystem.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to a fresh in-memory filesystem. Used by tests.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}
