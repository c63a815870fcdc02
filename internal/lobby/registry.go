// internal/lobby/registry.go
package lobby

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/shiburizu/concerto-server/internal/models"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxNameLength bounds player display names, in characters.
	MaxNameLength = 20
	// MaxIdentifierLength bounds a lobby code or alias as sent by clients.
	MaxIdentifierLength = 16
	// MaxGameLength bounds game tags.
	MaxGameLength = 32
)

// Session is what a player receives on create or join: the lobby view plus the
// credentials needed for later calls.
type Session struct {
	Projection
	PlayerID   int
	Secret     int
	Visibility models.Visibility
}

// Create opens a lobby with playerName seated as local id 1. alias is attached only
// when it is on the allow-list.
func (s *Service) Create(ctx context.Context, playerName string, visibility models.Visibility, alias, game string) (*Session, error) {
	if playerName == "" {
		return nil, fail(ErrInvalidInput, "No player name for creator provided.")
	}
	if err := s.validateName(playerName); err != nil {
		return nil, err
	}
	game, err := s.validGame(game)
	if err != nil {
		return nil, err
	}

	var attach *string
	if alias != "" && s.aliases.IsKnownAlias(alias) {
		if bound, ok := s.aliases.GameFor(alias); ok && bound != game {
			return nil, ErrGameMismatch
		}
		attach = &alias
	}

	for {
		l, err := s.createLobby(ctx, playerName, visibility, attach, game)
		if errors.Is(err, ErrAliasTaken) {
			live, rerr := s.aliasHeld(ctx, alias)
			if rerr != nil {
				return nil, rerr
			}
			if live {
				return nil, fail(ErrInvalidInput, "Alias already in use.")
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.session(l, 1), nil
	}
}

// aliasHeld prunes the lobby holding alias and reports whether it still has players.
// An abandoned holder is deleted, freeing the alias.
func (s *Service) aliasHeld(ctx context.Context, alias string) (bool, error) {
	holder, err := s.store.GetByAlias(ctx, alias)
	if errors.Is(err, ErrLobbyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	survivors, err := s.pruneLobbies(ctx, []*models.Lobby{holder})
	if err != nil {
		return false, err
	}
	return len(survivors) > 0, nil
}

// createLobby allocates a code and inserts the lobby, redrawing when a concurrent
// creator wins the same code at commit time.
func (s *Service) createLobby(ctx context.Context, playerName string, visibility models.Visibility, alias *string, game string) (*models.Lobby, error) {
	for {
		code, err := s.allocateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("allocate code: %w", err)
		}
		now := s.now()
		l := models.NewLobby(code, s.drawSecret(), visibility, game, now)
		l.Alias = alias
		l.Seat(playerName, now)

		err = s.store.Create(ctx, l)
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.logger.WithFields(log.Fields{
			"code":  l.Code,
			"game":  l.Game,
			"type":  l.Visibility,
			"alias": l.AliasOrEmpty(),
		}).Info("lobby created")
		return l, nil
	}
}

// Find resolves identifier as an alias or a numeric code. A non-empty game must match
// the lobby's game tag.
func (s *Service) Find(ctx context.Context, identifier, game string) (*models.Lobby, error) {
	if s.aliases.IsKnownAlias(identifier) {
		if bound, ok := s.aliases.GameFor(identifier); ok && game != "" && bound != game {
			return nil, ErrGameMismatch
		}
		l, err := s.store.GetByAlias(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if game != "" && l.Game != game {
			return nil, ErrGameMismatch
		}
		return l, nil
	}

	code, err := strconv.Atoi(identifier)
	if err != nil {
		return nil, fail(ErrInvalidInput, "Invalid lobby code.")
	}
	l, err := s.store.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if game != "" && l.Game != game {
		return nil, ErrGameMismatch
	}
	return l, nil
}

// Join seats playerName in the lobby named by identifier. A known alias with no lobby
// behind it gets a fresh private lobby.
func (s *Service) Join(ctx context.Context, identifier, playerName, game string) (*Session, error) {
	if identifier == "" {
		return nil, fail(ErrInvalidInput, "Lobby ID is empty")
	}
	if len(identifier) > MaxIdentifierLength {
		return nil, fail(ErrInvalidInput, "Invalid lobby code")
	}
	if playerName == "" {
		return nil, fail(ErrInvalidInput, "No player name provided.")
	}
	if err := s.validateName(playerName); err != nil {
		return nil, err
	}
	game, err := s.validGame(game)
	if err != nil {
		return nil, err
	}

	for {
		found, err := s.Find(ctx, identifier, game)
		if errors.Is(err, ErrLobbyNotFound) && s.aliases.IsKnownAlias(identifier) {
			alias := identifier
			l, err := s.createLobby(ctx, playerName, models.Private, &alias, game)
			if errors.Is(err, ErrAliasTaken) {
				continue // someone else created it first; join theirs
			}
			if err != nil {
				return nil, err
			}
			return s.session(l, 1), nil
		}
		if err != nil {
			return nil, err
		}
		return s.seat(ctx, found.Code, playerName, game)
	}
}

// seat prunes the lobby and, if anyone is left, adds the new player.
func (s *Service) seat(ctx context.Context, code int, playerName, game string) (*Session, error) {
	var (
		playerID int
		removed  []int
	)
	l, err := s.store.Update(ctx, code, func(l *models.Lobby) error {
		if l.Game != game {
			return ErrGameMismatch
		}
		removed = PrunePlayers(l, s.now(), s.cfg.LivenessTimeout)
		if l.Empty() {
			return nil
		}
		playerID = l.Seat(playerName, s.now()).LocalID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logPruned(l, removed)
	if l.Empty() {
		return nil, ErrEmptyLobby
	}
	s.logger.WithFields(log.Fields{"code": l.Code, "player": playerID}).Debug("player joined")
	return s.session(l, playerID), nil
}

// Check reports the visibility of the lobby named by identifier. Aliases always
// report Private.
func (s *Service) Check(ctx context.Context, identifier string) (models.Visibility, error) {
	if s.aliases.IsKnownAlias(identifier) {
		return models.Private, nil
	}
	code, err := strconv.Atoi(identifier)
	if err != nil {
		return "", fail(ErrInvalidInput, "Invalid lobby ID")
	}
	l, err := s.store.Get(ctx, code)
	if errors.Is(err, ErrLobbyNotFound) {
		return "", fail(ErrLobbyNotFound, "Lobby does not exist.")
	}
	if err != nil {
		return "", err
	}
	survivors, err := s.pruneLobbies(ctx, []*models.Lobby{l})
	if err != nil {
		return "", err
	}
	if len(survivors) == 0 {
		return "", fail(ErrLobbyNotFound, "Lobby does not exist.")
	}
	return survivors[0].Visibility, nil
}

// Delete drops lobbies whose player sets were observed empty.
func (s *Service) Delete(ctx context.Context, codes ...int) error {
	if len(codes) == 0 {
		return nil
	}
	if err := s.store.Delete(ctx, codes...); err != nil {
		return fmt.Errorf("delete lobbies: %w", err)
	}
	s.logger.WithField("codes", codes).Info("lobbies deleted")
	return nil
}

func (s *Service) validateName(name string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fail(ErrInvalidInput, "Your name is too long.")
	}
	if !s.names.IsNameAllowed(name) {
		return fail(ErrInvalidInput, "Your name contains banned words.")
	}
	return nil
}

// ValidateName applies the name rules used by create and join.
func (s *Service) ValidateName(name string) error {
	if name == "" {
		return fail(ErrInvalidInput, "No player name provided.")
	}
	return s.validateName(name)
}

func (s *Service) session(l *models.Lobby, playerID int) *Session {
	return &Session{
		Projection: Project(l, playerID),
		PlayerID:   playerID,
		Secret:     l.Secret,
		Visibility: l.Visibility,
	}
}
