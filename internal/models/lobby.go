// internal/models/lobby.go
package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Visibility controls whether a lobby shows up in public listings.
type Visibility string

const (
	Public  Visibility = "Public"
	Private Visibility = "Private"
)

// ParseVisibility maps the wire value to a Visibility. Anything other than
// "Public" yields Private.
func ParseVisibility(s string) Visibility {
	if Visibility(s) == Public {
		return Public
	}
	return Private
}

// Lobby is a matchmaking room. It exclusively owns its players, keyed by local id.
type Lobby struct {
	ID         uuid.UUID  `json:"-"`
	Code       int        `json:"code"`
	Secret     int        `json:"-"`
	Visibility Visibility `json:"type"`
	Alias      *string    `json:"alias"`
	Game       string     `json:"game"`

	// NextLocalID is the id handed to the next player to join. The creator takes 1.
	NextLocalID int `json:"-"`

	Players map[int]*Player `json:"-"`

	CreatedAt time.Time `json:"-"`
}

// NewLobby returns an empty lobby with a fresh row id. Players are seated with Seat.
func NewLobby(code, secret int, visibility Visibility, game string, now time.Time) *Lobby {
	id, _ := uuid.NewRandom()
	return &Lobby{
		ID:          id,
		Code:        code,
		Secret:      secret,
		Visibility:  visibility,
		Game:        game,
		NextLocalID: 1,
		Players:     make(map[int]*Player),
		CreatedAt:   now,
	}
}

// Seat adds a new idle player and returns it.
func (l *Lobby) Seat(name string, now time.Time) *Player {
	p := NewPlayer(l.NextLocalID, name, now)
	l.Players[p.LocalID] = p
	l.NextLocalID++
	return p
}

// Player returns the player with the given local id, or nil.
func (l *Lobby) Player(id int) *Player {
	return l.Players[id]
}

// NameOf returns the display name of the player holding local id, or "".
func (l *Lobby) NameOf(id int) string {
	if p := l.Players[id]; p != nil {
		return p.Name
	}
	return ""
}

// Empty reports whether the lobby has no players left.
func (l *Lobby) Empty() bool {
	return len(l.Players) == 0
}

// SortedPlayers returns the players ordered by local id (join order).
func (l *Lobby) SortedPlayers() []*Player {
	out := make([]*Player, 0, len(l.Players))
	for _, p := range l.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocalID < out[j].LocalID })
	return out
}

// AliasOrEmpty returns the vanity alias, or "" when none is attached.
func (l *Lobby) AliasOrEmpty() string {
	if l.Alias == nil {
		return ""
	}
	return *l.Alias
}

// Clone returns a deep copy so a store can hand out snapshots and discard
// mutations that fail halfway.
func (l *Lobby) Clone() *Lobby {
	c := *l
	if l.Alias != nil {
		a := *l.Alias
		c.Alias = &a
	}
	c.Players = make(map[int]*Player, len(l.Players))
	for id, p := range l.Players {
		c.Players[id] = p.Clone()
	}
	return &c
}
