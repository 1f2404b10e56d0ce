package config

import (
	"log"
	"sync"
)

// Store wraps a Config for live settings: readers take a snapshot at need
// and edits are pushed to registered listeners.
type Store struct {
	mu        sync.RWMutex
	cfg       *Config
	listeners []func(Config)
}

// NewStore wraps cfg. The store owns cfg from here on.
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = New()
	}
	return &Store{cfg: cfg}
}

// Current returns a snapshot of the configuration. The Themes map is
// shared; everything else is a copy.
func (s *Store) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

// Lock reports the lock-vs-hold flag, read at need by the mode controller.
func (s *Store) Lock() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Lock
}

// Update applies mutate under the store lock and then notifies listeners
// with the new snapshot.
func (s *Store) Update(mutate func(*Config)) {
	s.mu.Lock()
	mutate(s.cfg)
	snapshot := *s.cfg
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("config: listener panic: %v", r)
				}
			}()
			fn(snapshot)
		}()
	}
}

// OnChanged registers a listener for settings edits. Listeners run on the
// goroutine that called Update.
func (s *Store) OnChanged(fn func(Config)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}
