// internal/lobby/ops.go
package lobby

import (
	"context"

	"github.com/shiburizu/concerto-server/internal/models"
	log "github.com/sirupsen/logrus"
)

// mutate resolves identifier, checks secret and runs fn inside one store transaction.
func (s *Service) mutate(ctx context.Context, identifier string, secret int, fn func(l *models.Lobby) error) (*models.Lobby, error) {
	found, err := s.Find(ctx, identifier, "")
	if err != nil {
		return nil, err
	}
	l, err := s.store.Update(ctx, found.Code, func(l *models.Lobby) error {
		if l.Secret != secret {
			return ErrUnauthorized
		}
		return fn(l)
	})
	if err != nil {
		return nil, err
	}
	if l.Empty() {
		s.logger.WithField("code", l.Code).Info("lobby deleted")
	}
	return l, nil
}

// Status is the heartbeat: it prunes the lobby, refreshes the caller's liveness and
// returns the caller's view. A caller pruned by this very call is NotInLobby.
func (s *Service) Status(ctx context.Context, identifier string, secret, id int) (*Projection, error) {
	var (
		proj    *Projection
		removed []int
	)
	l, err := s.mutate(ctx, identifier, secret, func(l *models.Lobby) error {
		removed = PrunePlayers(l, s.now(), s.cfg.LivenessTimeout)
		p := l.Player(id)
		if p == nil {
			return nil
		}
		p.LastSeen = s.now()
		v := Project(l, id)
		proj = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logPruned(l, removed)
	if proj == nil {
		return nil, ErrNotInLobby
	}
	return proj, nil
}

// Challenge lets id challenge targetID, advertising ip.
func (s *Service) Challenge(ctx context.Context, identifier string, secret, id, targetID int, ip string) error {
	_, err := s.mutate(ctx, identifier, secret, func(l *models.Lobby) error {
		return Challenge(l, id, targetID, ip)
	})
	return err
}

// PreAccept lets id signal it is about to accept targetID.
func (s *Service) PreAccept(ctx context.Context, identifier string, secret, id, targetID int) error {
	_, err := s.mutate(ctx, identifier, secret, func(l *models.Lobby) error {
		return PreAccept(l, id, targetID)
	})
	return err
}

// Accept pairs id with its challenger targetID. already reports that one side was
// playing, in which case nothing changed.
func (s *Service) Accept(ctx context.Context, identifier string, secret, id, targetID int) (already bool, err error) {
	l, err := s.mutate(ctx, identifier, secret, func(l *models.Lobby) error {
		var aerr error
		already, aerr = Accept(l, id, targetID)
		return aerr
	})
	if err != nil {
		return false, err
	}
	if !already {
		s.logger.WithFields(log.Fields{"code": l.Code, "player": id, "target": targetID}).Debug("match started")
	}
	return already, nil
}

// End finishes id's match or withdraws its challenge.
func (s *Service) End(ctx context.Context, identifier string, secret, id int) error {
	_, err := s.mutate(ctx, identifier, secret, func(l *models.Lobby) error {
		return End(l, id)
	})
	return err
}

// Leave removes id from the lobby. An id that is already gone is not an error. The
// lobby is deleted once its last player leaves.
func (s *Service) Leave(ctx context.Context, identifier string, secret, id int) error {
	var left bool
	l, err := s.mutate(ctx, identifier, secret, func(l *models.Lobby) error {
		left = Leave(l, id)
		return nil
	})
	if err != nil {
		return err
	}
	if left {
		s.logger.WithFields(log.Fields{"code": l.Code, "player": id}).Debug("player left")
	}
	return nil
}
