// internal/lobby/query.go
package lobby

import (
	"encoding/json"

	"github.com/shiburizu/concerto-server/internal/models"
)

// IdleEntry is an idle player, encoded as [name, id].
type IdleEntry struct {
	Name string
	ID   int
}

func (e IdleEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Name, e.ID})
}

// PlayingEntry is one match in progress, encoded as [name, opponent, id, target, ip].
type PlayingEntry struct {
	Name     string
	Opponent string
	ID       int
	TargetID int
	IP       string
}

func (e PlayingEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Name, e.Opponent, e.ID, e.TargetID, e.IP})
}

// ChallengeEntry is an incoming challenge, encoded as [name, id, ip].
type ChallengeEntry struct {
	Name string
	ID   int
	IP   string
}

func (e ChallengeEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Name, e.ID, e.IP})
}

// Summary is one row of the public lobby list, encoded as [code, game, players].
type Summary struct {
	Code    int
	Game    string
	Players int
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{s.Code, s.Game, s.Players})
}

// Projection is the lobby state returned to a polling player.
type Projection struct {
	Code       int              `json:"id"`
	Idle       []IdleEntry      `json:"idle"`
	Playing    []PlayingEntry   `json:"playing"`
	Challenges []ChallengeEntry `json:"challenges"`
	Alias      *string          `json:"alias"`
}

// Project builds the view of l seen by player requesterID.
func Project(l *models.Lobby, requesterID int) Projection {
	return Projection{
		Code:       l.Code,
		Idle:       IdleList(l),
		Playing:    PlayingList(l),
		Challenges: ChallengesFor(l, requesterID),
		Alias:      l.Alias,
	}
}

// IdleList returns the idle players in join order.
func IdleList(l *models.Lobby) []IdleEntry {
	out := []IdleEntry{}
	for _, p := range l.SortedPlayers() {
		if p.Status == models.Idle {
			out = append(out, IdleEntry{Name: p.Name, ID: p.LocalID})
		}
	}
	return out
}

// PlayingList reports each match once even though both sides are marked playing.
// A player is emitted only when neither it nor its target has been seen yet, and
// only once an address has been exchanged.
func PlayingList(l *models.Lobby) []PlayingEntry {
	out := []PlayingEntry{}
	consumed := make(map[int]bool)
	for _, p := range l.SortedPlayers() {
		if p.Status != models.Playing || p.Target == nil || p.IP == nil {
			continue
		}
		if consumed[p.LocalID] || consumed[*p.Target] {
			continue
		}
		out = append(out, PlayingEntry{
			Name:     p.Name,
			Opponent: l.NameOf(*p.Target),
			ID:       p.LocalID,
			TargetID: *p.Target,
			IP:       *p.IP,
		})
		consumed[p.LocalID] = true
		consumed[*p.Target] = true
	}
	return out
}

// ChallengesFor lists players that target id with an address but are not yet playing.
func ChallengesFor(l *models.Lobby, id int) []ChallengeEntry {
	out := []ChallengeEntry{}
	for _, p := range l.SortedPlayers() {
		if p.Targets(id) && p.Status != models.Playing && p.IP != nil {
			out = append(out, ChallengeEntry{Name: p.Name, ID: p.LocalID, IP: *p.IP})
		}
	}
	return out
}

// Summarize returns the list row for l.
func Summarize(l *models.Lobby) Summary {
	return Summary{Code: l.Code, Game: l.Game, Players: len(l.Players)}
}

// MatchNames lists matches in progress as [name, opponent] pairs for the stats view.
func MatchNames(l *models.Lobby) [][2]string {
	out := [][2]string{}
	for _, m := range PlayingList(l) {
		out = append(out, [2]string{m.Name, m.Opponent})
	}
	return out
}

// IdleNames lists idle display names for the stats view.
func IdleNames(l *models.Lobby) []string {
	out := []string{}
	for _, e := range IdleList(l) {
		out = append(out, e.Name)
	}
	return out
}
