// internal/lobby/codes.go
package lobby

import (
	"context"
	"errors"

	"github.com/shiburizu/concerto-server/internal/models"
)

// allocateCode draws four-digit codes until it finds one no live lobby holds. A
// colliding lobby is pruned first since its players may all be gone. There is no
// retry cap; ctx bounds the search.
func (s *Service) allocateCode(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		code := s.drawCode()
		l, err := s.store.Get(ctx, code)
		if errors.Is(err, ErrLobbyNotFound) {
			return code, nil
		}
		if err != nil {
			return 0, err
		}
		survivors, err := s.pruneLobbies(ctx, []*models.Lobby{l})
		if err != nil {
			return 0, err
		}
		if len(survivors) == 0 {
			return code, nil
		}
		s.logger.WithField("code", code).Debug("collision on lobby code, redrawing")
	}
}
