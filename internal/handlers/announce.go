// internal/handlers/announce.go
package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/shiburizu/concerto-server/internal/cache"
	"github.com/shiburizu/concerto-server/internal/lobby"
)

// AnnounceHandler serves /announce?key=K. It sweeps stale players out of every lobby
// and queues a snapshot of the public ones for the announcer.
func (s *Server) AnnounceHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if s.opts.AnnounceKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.opts.AnnounceKey)) != 1 {
		http.Error(w, "BAD", http.StatusForbidden)
		return
	}

	res, err := s.svc.Sweep(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("sweep failed")
		http.Error(w, "sweep failed", http.StatusInternalServerError)
		return
	}

	if s.queue != nil {
		a := s.announcement(res)
		if err := s.queue.Publish(r.Context(), a); err != nil {
			s.logger.WithError(err).Error("failed to publish announcement")
			http.Error(w, "publish failed", http.StatusInternalServerError)
			return
		}
		s.logger.WithField("lobbies", len(a.Lobbies)).Debug("announcement queued")
	}
	w.Write([]byte("OK"))
}

func (s *Server) announcement(res *lobby.SweepResult) cache.Announcement {
	a := cache.Announcement{
		Lobbies:   make([]cache.AnnouncedLobby, 0, len(res.Public)),
		Players:   res.Players,
		Timestamp: s.now().Unix(),
	}
	for _, l := range res.Public {
		a.Lobbies = append(a.Lobbies, cache.AnnouncedLobby{
			Code:    l.Code,
			Game:    l.Game,
			Idle:    lobby.IdleNames(l),
			Playing: lobby.MatchNames(l),
		})
	}
	return a
}
