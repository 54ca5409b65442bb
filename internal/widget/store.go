// Package widget implements the state model behind the CV page's
// progressive-enhancement widgets: theme switching, scroll-spy navigation,
// the certificate lightbox, and print export. Each widget owns its own
// state and initializes independently; a failure in one never propagates
// to another.
package widget

import (
	"errors"
	"sync"
)

// ThemeKey is the single persisted key for the explicit theme choice.
// Absence of the key means "no explicit preference".
const ThemeKey = "cv-theme"

// ErrNoValue is returned by Store.Get when no value is persisted under the key.
var ErrNoValue = errors.New("widget: no stored value")

// Store persists widget state across sessions. Implementations may fail
// (storage quota, disabled cookies); callers are expected to degrade to
// in-memory state rather than surface the error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryStore is an ephemeral Store. It backs tests and serves as the
// fallback when the durable store is unavailable.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNoValue
	}
	return v, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// fallbackStore wraps a possibly-failing Store with an in-memory shadow.
// Writes always land in the shadow; reads prefer the primary and fall back
// to the shadow when the primary errors out.
type fallbackStore struct {
	primary Store
	shadow  *MemoryStore
}

func newFallbackStore(primary Store) *fallbackStore {
	return &fallbackStore{primary: primary, shadow: NewMemoryStore()}
}

func (s *fallbackStore) Get(key string) (string, error) {
	var primaryErr error
	if s.primary != nil {
		v, err := s.primary.Get(key)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrNoValue) {
			primaryErr = err
		}
	}
	// Primary unavailable or empty: the shadow still holds anything written
	// during this session.
	v, err := s.shadow.Get(key)
	if err != nil && primaryErr != nil {
		// Nothing to serve; report the primary's failure rather than
		// pretending the key was simply never written.
		return "", primaryErr
	}
	return v, err
}

func (s *fallbackStore) Set(key, value string) error {
	_ = s.shadow.Set(key, value)
	if s.primary != nil {
		// Persistence failures degrade silently to the shadow copy.
		_ = s.primary.Set(key, value)
	}
	return nil
}
