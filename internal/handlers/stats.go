// internal/handlers/stats.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/shiburizu/concerto-server/internal/lobby"
	"github.com/shiburizu/concerto-server/internal/models"
)

type checkResponse struct {
	Status string            `json:"status"`
	Msg    string            `json:"msg"`
	Type   models.Visibility `json:"type"`
}

// StatsHandler serves /s: the public lobby browser and the existence check.
func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	switch q.Get("action") {
	case "list":
		limit := s.opts.StatsListLimit
		if raw := q.Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeFailMsg(w, "Bad limit argument.")
				return
			}
			limit = n
		}
		stats, err := s.svc.Stats(ctx, q.Get("game"), limit)
		if err != nil {
			s.writeFail(w, r, err)
			return
		}
		// keyed by code, encoded as a JSON object
		byCode := make(map[int]lobby.LobbyStats, len(stats))
		for _, st := range stats {
			byCode[st.Code] = st
		}
		writeJSON(w, byCode)
	case "check":
		vis, err := s.svc.Check(ctx, q.Get("id"))
		if err != nil {
			s.writeFail(w, r, err)
			return
		}
		writeJSON(w, checkResponse{Status: statusOK, Msg: "OK", Type: vis})
	default:
		writeFailMsg(w, "Invalid stats action")
	}
}
