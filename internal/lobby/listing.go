// internal/lobby/listing.go
package lobby

import (
	"context"

	"github.com/shiburizu/concerto-server/internal/models"
)

// announcementEmbedLimit is how many public lobbies a sweep reports.
const announcementEmbedLimit = 10

// ListPublic returns the public lobbies of game that still have players after pruning.
func (s *Service) ListPublic(ctx context.Context, game string) ([]Summary, error) {
	lobbies, err := s.listPruned(ctx, ListOptions{
		Visibility: models.Public,
		Game:       s.gameOrDefault(game),
		NonEmpty:   true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(lobbies))
	for _, l := range lobbies {
		out = append(out, Summarize(l))
	}
	return out, nil
}

// LobbyStats is the browse view of one public lobby.
type LobbyStats struct {
	Code    int         `json:"-"`
	Game    string      `json:"game"`
	Idle    []string    `json:"idle"`
	Playing [][2]string `json:"playing"`
}

// Stats returns up to limit public lobbies with their idle players and matches. An
// empty game lists every game.
func (s *Service) Stats(ctx context.Context, game string, limit int) ([]LobbyStats, error) {
	lobbies, err := s.listPruned(ctx, ListOptions{
		Visibility: models.Public,
		Game:       game,
		NonEmpty:   true,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]LobbyStats, 0, len(lobbies))
	for _, l := range lobbies {
		out = append(out, LobbyStats{
			Code:    l.Code,
			Game:    l.Game,
			Idle:    IdleNames(l),
			Playing: MatchNames(l),
		})
	}
	return out, nil
}

// SweepResult is the outcome of a full cleanup pass.
type SweepResult struct {
	Public  []*models.Lobby
	Players int
}

// Sweep prunes every public and private lobby and counts the players left. It backs
// the periodic announcement of public lobbies.
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	public, err := s.listPruned(ctx, ListOptions{Visibility: models.Public, NonEmpty: true})
	if err != nil {
		return nil, err
	}
	if len(public) > announcementEmbedLimit {
		public = public[:announcementEmbedLimit]
	}
	if _, err := s.listPruned(ctx, ListOptions{Visibility: models.Private}); err != nil {
		return nil, err
	}
	n, err := s.store.PlayerCount(ctx)
	if err != nil {
		return nil, err
	}
	return &SweepResult{Public: public, Players: n}, nil
}

func (s *Service) listPruned(ctx context.Context, opts ListOptions) ([]*models.Lobby, error) {
	lobbies, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.pruneLobbies(ctx, lobbies)
}
