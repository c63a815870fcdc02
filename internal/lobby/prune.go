// internal/lobby/prune.go
package lobby

import (
	"context"
	"errors"
	"time"

	"github.com/shiburizu/concerto-server/internal/models"
	log "github.com/sirupsen/logrus"
)

// PrunePlayers makes every player not seen within timeout leave, exactly as if it
// had asked to. It returns the local ids removed.
func PrunePlayers(l *models.Lobby, now time.Time, timeout time.Duration) []int {
	var stale []int
	for _, p := range l.SortedPlayers() {
		if now.Sub(p.LastSeen) > timeout {
			stale = append(stale, p.LocalID)
		}
	}
	for _, id := range stale {
		Leave(l, id)
	}
	return stale
}

// errNoChange aborts an Update whose callback left the lobby as it found it.
var errNoChange = errors.New("no change")

// pruneLobby runs the player-level prune on one lobby and commits it when anyone was
// removed. The returned snapshot reports Empty() when the lobby was deleted as a result.
func (s *Service) pruneLobby(ctx context.Context, code int) (*models.Lobby, error) {
	var (
		removed  []int
		snapshot *models.Lobby
	)
	l, err := s.store.Update(ctx, code, func(l *models.Lobby) error {
		removed = PrunePlayers(l, s.now(), s.cfg.LivenessTimeout)
		if len(removed) == 0 {
			snapshot = l
			return errNoChange
		}
		return nil
	})
	if errors.Is(err, errNoChange) {
		return snapshot, nil
	}
	if err != nil {
		return nil, err
	}
	s.logPruned(l, removed)
	return l, nil
}

// pruneLobbies is the lobby-level prune. Lobbies that end up (or already are) empty
// are deleted together after the scan; the survivors are returned in input order.
func (s *Service) pruneLobbies(ctx context.Context, lobbies []*models.Lobby) ([]*models.Lobby, error) {
	var marked []int
	survivors := make([]*models.Lobby, 0, len(lobbies))
	for _, l := range lobbies {
		if l == nil {
			continue
		}
		if l.Empty() {
			marked = append(marked, l.Code)
			continue
		}
		pruned, err := s.pruneLobby(ctx, l.Code)
		if errors.Is(err, ErrLobbyNotFound) {
			continue // deleted by a concurrent request
		}
		if err != nil {
			return nil, err
		}
		if pruned.Empty() {
			marked = append(marked, l.Code)
			continue
		}
		survivors = append(survivors, pruned)
	}
	if err := s.Delete(ctx, marked...); err != nil {
		return nil, err
	}
	return survivors, nil
}

func (s *Service) logPruned(l *models.Lobby, removed []int) {
	if len(removed) == 0 {
		return
	}
	s.logger.WithFields(log.Fields{
		"code":    l.Code,
		"players": removed,
		"deleted": l.Empty(),
	}).Info("pruned stale players")
}
