// internal/models/player.go
package models

import "time"

// Status is the externally reported state of a player.
type Status string

const (
	Idle    Status = "idle"
	Playing Status = "playing"
)

// Player is one participant's session inside a lobby.
type Player struct {
	LocalID  int       `json:"id"`
	Name     string    `json:"name"`
	LastSeen time.Time `json:"-"`
	Status   Status    `json:"status"`

	// IP is set once the player has exchanged an address, either by challenging with one
	// or by inheriting the peer's on accept.
	IP *string `json:"ip,omitempty"`

	// Target is the local id of the peer being challenged or played against.
	Target *int `json:"target,omitempty"`
}

// NewPlayer returns an idle player with no target and no address.
func NewPlayer(localID int, name string, now time.Time) *Player {
	return &Player{
		LocalID:  localID,
		Name:     name,
		LastSeen: now,
		Status:   Idle,
	}
}

// Reset puts the player back to idle and forgets the target and address.
func (p *Player) Reset() {
	p.Status = Idle
	p.Target = nil
	p.IP = nil
}

// Targets reports whether the player currently points at local id.
func (p *Player) Targets(id int) bool {
	return p.Target != nil && *p.Target == id
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	c := *p
	if p.IP != nil {
		ip := *p.IP
		c.IP = &ip
	}
	if p.Target != nil {
		t := *p.Target
		c.Target = &t
	}
	return &c
}
