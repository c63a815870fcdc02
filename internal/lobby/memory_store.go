// internal/lobby/memory_store.go
package lobby

import (
	"context"
	"sort"
	"sync"

	"github.com/shiburizu/concerto-server/internal/models"
)

// MemoryStore keeps lobbies in process memory. The mutex serializes every call,
// which gives each Update the same all-or-nothing behavior as a database transaction.
type MemoryStore struct {
	mu      sync.Mutex            // Protects lobbies and aliases.
	lobbies map[int]*models.Lobby // Lobby code -> lobby.
	aliases map[string]int        // Alias -> lobby code.
}

// NewMemoryStore initializes and returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lobbies: make(map[int]*models.Lobby),
		aliases: make(map[string]int),
	}
}

// Create stores a copy of l.
func (s *MemoryStore) Create(_ context.Context, l *models.Lobby) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.lobbies[l.Code]; exists {
		return ErrCodeTaken
	}
	if l.Alias != nil {
		if _, exists := s.aliases[*l.Alias]; exists {
			return ErrAliasTaken
		}
		s.aliases[*l.Alias] = l.Code
	}
	s.lobbies[l.Code] = l.Clone()
	return nil
}

// Get retrieves a snapshot of the lobby holding code.
func (s *MemoryStore) Get(_ context.Context, code int) (*models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lobbies[code]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return l.Clone(), nil
}

// GetByAlias retrieves a snapshot of the lobby holding alias.
func (s *MemoryStore) GetByAlias(_ context.Context, alias string) (*models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.aliases[alias]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return s.lobbies[code].Clone(), nil
}

// Update runs fn against a copy and swaps it in on success.
func (s *MemoryStore) Update(_ context.Context, code int, fn func(l *models.Lobby) error) (*models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.lobbies[code]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if next.Empty() {
		s.deleteUnsafe(code)
		return next, nil
	}
	s.lobbies[code] = next
	return next.Clone(), nil
}

// Delete removes lobbies by code.
func (s *MemoryStore) Delete(_ context.Context, codes ...int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, code := range codes {
		s.deleteUnsafe(code)
	}
	return nil
}

// deleteUnsafe assumes the lock is held.
func (s *MemoryStore) deleteUnsafe(code int) {
	l, ok := s.lobbies[code]
	if !ok {
		return
	}
	if l.Alias != nil {
		delete(s.aliases, *l.Alias)
	}
	delete(s.lobbies, code)
}

// List returns matching snapshots ordered by code.
func (s *MemoryStore) List(_ context.Context, opts ListOptions) ([]*models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]int, 0, len(s.lobbies))
	for code := range s.lobbies {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	var out []*models.Lobby
	for _, code := range codes {
		l := s.lobbies[code]
		if opts.Visibility != "" && l.Visibility != opts.Visibility {
			continue
		}
		if opts.Game != "" && l.Game != opts.Game {
			continue
		}
		if opts.NonEmpty && l.Empty() {
			continue
		}
		out = append(out, l.Clone())
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

// PlayerCount sums players over all lobbies.
func (s *MemoryStore) PlayerCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lobbies {
		n += len(l.Players)
	}
	return n, nil
}
