// internal/handlers/lobby.go
package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/shiburizu/concerto-server/internal/lobby"
	"github.com/shiburizu/concerto-server/internal/models"
)

// sessionResponse answers create and join. msg carries the caller's local id.
type sessionResponse struct {
	lobby.Projection
	Status string            `json:"status"`
	Msg    int               `json:"msg"`
	Secret int               `json:"secret"`
	Type   models.Visibility `json:"type"`
}

type statusResponse struct {
	lobby.Projection
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

type listResponse struct {
	Msg     string          `json:"msg"`
	Status  string          `json:"status"`
	Lobbies []lobby.Summary `json:"lobbies"`
}

// LobbyHandler serves /l, dispatching on the action query parameter.
func (s *Server) LobbyHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	switch q.Get("action") {
	case "create":
		sess, err := s.svc.Create(ctx, q.Get("name"), models.ParseVisibility(q.Get("type")), q.Get("alias"), q.Get("game"))
		if err != nil {
			s.writeFail(w, r, err)
			return
		}
		writeSession(w, sess)
	case "join":
		sess, err := s.svc.Join(ctx, q.Get("id"), q.Get("name"), q.Get("game"))
		if err != nil {
			s.writeFail(w, r, err)
			return
		}
		writeSession(w, sess)
	case "list":
		lobbies, err := s.svc.ListPublic(ctx, q.Get("game"))
		if err != nil {
			s.writeFail(w, r, err)
			return
		}
		writeJSON(w, listResponse{Msg: "OK", Status: statusOK, Lobbies: lobbies})
	case "status", "challenge", "pre_accept", "accept", "end", "leave":
		s.lobbyAction(w, r, q)
	default:
		writeFailMsg(w, "No action match")
	}
}

// lobbyAction handles the actions that require lobby credentials.
func (s *Server) lobbyAction(w http.ResponseWriter, r *http.Request, q url.Values) {
	ctx := r.Context()
	id := q.Get("id")
	if id == "" || q.Get("secret") == "" {
		writeFailMsg(w, "No action match")
		return
	}
	secret, err := strconv.Atoi(q.Get("secret"))
	if err != nil {
		writeFailMsg(w, "Invalid lobby code.")
		return
	}
	player, ok := intParam(q, "p")
	if !ok {
		writeFailMsg(w, "Invalid player ID.")
		return
	}

	action := q.Get("action")
	var target int
	if action == "challenge" || action == "pre_accept" || action == "accept" {
		if target, ok = intParam(q, "t"); !ok {
			writeFailMsg(w, "Invalid target ID.")
			return
		}
	}

	switch action {
	case "status":
		proj, err := s.svc.Status(ctx, id, secret, player)
		if err != nil {
			s.writeFail(w, r, err)
			return
		}
		writeJSON(w, statusResponse{Projection: *proj, Status: statusOK, Msg: "OK"})
		return
	case "accept":
		already, err := s.svc.Accept(ctx, id, secret, player, target)
		if err != nil {
			s.writeFail(w, r, err)
			return
		}
		if already {
			writeOK(w, "Already marked as playing.")
			return
		}
		writeOK(w, "OK")
		return
	case "challenge":
		err = s.svc.Challenge(ctx, id, secret, player, target, q.Get("ip"))
	case "pre_accept":
		err = s.svc.PreAccept(ctx, id, secret, player, target)
	case "end":
		err = s.svc.End(ctx, id, secret, player)
	case "leave":
		err = s.svc.Leave(ctx, id, secret, player)
	}
	if err != nil {
		s.writeFail(w, r, err)
		return
	}
	writeOK(w, "OK")
}

func writeSession(w http.ResponseWriter, sess *lobby.Session) {
	writeJSON(w, sessionResponse{
		Projection: sess.Projection,
		Status:     statusOK,
		Msg:        sess.PlayerID,
		Secret:     sess.Secret,
		Type:       sess.Visibility,
	})
}

func intParam(q url.Values, key string) (int, bool) {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0, false
	}
	return v, true
}
