// internal/handlers/server.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shiburizu/concerto-server/internal/cache"
	"github.com/shiburizu/concerto-server/internal/lobby"
	"github.com/sirupsen/logrus"
)

// Publisher receives announcement snapshots produced by the sweep endpoint.
type Publisher interface {
	Publish(ctx context.Context, a cache.Announcement) error
}

// Options configures the HTTP boundary.
type Options struct {
	// AnnounceKey guards /announce; empty disables the endpoint.
	AnnounceKey string
	// CurrentVersion is the client version accepted by /v; empty accepts any.
	CurrentVersion string
	// StatsListLimit is the default number of lobbies returned by /s?action=list.
	StatsListLimit int
	AllowedOrigins []string
}

// Server exposes the lobby Service over HTTP query-string endpoints.
type Server struct {
	svc    *lobby.Service
	queue  Publisher
	opts   Options
	logger *logrus.Logger
	now    func() time.Time
}

// NewServer builds the handlers. queue may be nil, in which case sweeps still prune
// but nothing is announced.
func NewServer(svc *lobby.Service, queue Publisher, opts Options, logger *logrus.Logger) *Server {
	if opts.StatsListLimit <= 0 {
		opts.StatsListLimit = 8
	}
	return &Server{
		svc:    svc,
		queue:  queue,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

const (
	statusOK   = "OK"
	statusFail = "FAIL"
)

// result is the minimal response body every endpoint returns.
type result struct {
	Status string      `json:"status"`
	Msg    interface{} `json:"msg"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, result{Status: statusOK, Msg: msg})
}

func writeFailMsg(w http.ResponseWriter, msg string) {
	writeJSON(w, result{Status: statusFail, Msg: msg})
}

// writeFail reports err as a FAIL body. Store errors are logged and hidden from the
// client.
func (s *Server) writeFail(w http.ResponseWriter, r *http.Request, err error) {
	if lobby.IsFailure(err) {
		writeFailMsg(w, lobby.Message(err))
		return
	}
	s.logger.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"action": r.URL.Query().Get("action"),
	}).WithError(err).Error("request failed")
	writeFailMsg(w, "Server error.")
}
