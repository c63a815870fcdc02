// internal/lobby/store.go
package lobby

import (
	"context"

	"github.com/shiburizu/concerto-server/internal/models"
)

// ListOptions filters List. Zero values match everything.
type ListOptions struct {
	Visibility models.Visibility
	Game       string
	// NonEmpty restricts the result to lobbies holding at least one player.
	NonEmpty bool
	// Limit caps the number of lobbies returned (0 => no limit).
	Limit int
}

// Store persists lobbies. Each call is its own transaction; lobbies handed out are
// snapshots the caller may read freely.
type Store interface {
	// Create inserts a new lobby, failing with ErrCodeTaken or ErrAliasTaken when the
	// code or alias is already held.
	Create(ctx context.Context, l *models.Lobby) error

	// Get returns the lobby holding code, or ErrLobbyNotFound.
	Get(ctx context.Context, code int) (*models.Lobby, error)

	// GetByAlias returns the lobby holding alias, or ErrLobbyNotFound.
	GetByAlias(ctx context.Context, alias string) (*models.Lobby, error)

	// Update loads the lobby for writing and runs fn on a private copy. Changes are
	// committed only when fn returns nil. A lobby left without players is deleted in
	// the same transaction; the returned snapshot then reports Empty().
	Update(ctx context.Context, code int, fn func(l *models.Lobby) error) (*models.Lobby, error)

	// Delete removes the given lobbies. Unknown codes are ignored.
	Delete(ctx context.Context, codes ...int) error

	// List returns snapshots ordered by code.
	List(ctx context.Context, opts ListOptions) ([]*models.Lobby, error)

	// PlayerCount returns the number of players across all lobbies.
	PlayerCount(ctx context.Context) (int, error)
}
