// internal/lobby/protocol.go
package lobby

import "github.com/shiburizu/concerto-server/internal/models"

// MaxIPLength bounds the address a challenger advertises.
const MaxIPLength = 64

var errSelfTarget = fail(ErrInvalidInput, "Cannot target yourself.")

// The functions below are the challenge/accept/end/leave transitions. They mutate
// the lobby in place and never touch storage; the Service runs them inside a
// Store.Update so each one commits as a unit.

// Challenge records that id wants to play targetID at the given address. Status is
// left alone: a challenger still reports as idle until the target accepts.
func Challenge(l *models.Lobby, id, targetID int, ip string) error {
	p := l.Player(id)
	if p == nil {
		return ErrNotInLobby
	}
	if id == targetID {
		return errSelfTarget
	}
	if ip == "" {
		return fail(ErrInvalidInput, "IP not provided")
	}
	if len(ip) > MaxIPLength {
		return fail(ErrInvalidInput, "Invalid IP.")
	}
	p.Target = intPtr(targetID)
	p.IP = strPtr(ip)
	return nil
}

// PreAccept points id at targetID without an address so the challenger can see the
// target intends to accept.
func PreAccept(l *models.Lobby, id, targetID int) error {
	p := l.Player(id)
	if p == nil || l.Player(targetID) == nil {
		return ErrNotInLobby
	}
	if id == targetID {
		return errSelfTarget
	}
	p.Target = intPtr(targetID)
	return nil
}

// Accept moves id and its challenger targetID into Playing against each other with a
// single shared address: the challenger's if it has one, otherwise the accepter's.
// When either side is already playing nothing changes and alreadyPlaying is true.
func Accept(l *models.Lobby, id, targetID int) (alreadyPlaying bool, err error) {
	accepter := l.Player(id)
	challenger := l.Player(targetID)
	if accepter == nil || challenger == nil {
		return false, ErrNotInLobby
	}
	if id == targetID {
		return false, errSelfTarget
	}
	if accepter.Status == models.Playing || challenger.Status == models.Playing {
		return true, nil
	}

	shared := challenger.IP
	if shared == nil {
		shared = accepter.IP
	}
	for _, p := range []*models.Player{accepter, challenger} {
		p.Status = models.Playing
		if shared != nil {
			p.IP = strPtr(*shared)
		} else {
			p.IP = nil
		}
	}
	accepter.Target = intPtr(challenger.LocalID)
	challenger.Target = intPtr(accepter.LocalID)
	return false, nil
}

// End returns id to idle. Its peer is reset too, but only while the peer still
// points back at id.
func End(l *models.Lobby, id int) error {
	p := l.Player(id)
	if p == nil {
		return ErrNotInLobby
	}
	resetPeer(l, p)
	p.Reset()
	return nil
}

// Leave removes id from the lobby, releasing whoever was bound to it. A player that
// never set a target of its own may still have been challenged, so every other
// player pointing at it is reset. Leaving an unknown id is a no-op.
func Leave(l *models.Lobby, id int) bool {
	p := l.Player(id)
	if p == nil {
		return false
	}
	if p.Target != nil {
		resetPeer(l, p)
	} else {
		for _, other := range l.Players {
			if other.LocalID != id && other.Targets(id) {
				other.Reset()
			}
		}
	}
	delete(l.Players, id)
	return true
}

// resetPeer resets p's target when that target points back at p.
func resetPeer(l *models.Lobby, p *models.Player) {
	if p.Target == nil {
		return
	}
	peer := l.Player(*p.Target)
	if peer != nil && peer.LocalID != p.LocalID && peer.Targets(p.LocalID) {
		peer.Reset()
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
