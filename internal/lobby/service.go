// internal/lobby/service.go
package lobby

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

// NameFilter decides whether a display name may be used.
type NameFilter interface {
	IsNameAllowed(name string) bool
}

// AliasList is the fixed allow-list of vanity lobby aliases.
type AliasList interface {
	IsKnownAlias(alias string) bool
	// GameFor returns the game an alias is reserved for, if it is bound to one.
	GameFor(alias string) (string, bool)
}

// Config holds the tunables of the matchmaking core.
type Config struct {
	// LivenessTimeout is how long a player may go without polling before it is pruned.
	LivenessTimeout time.Duration
	// DefaultGame is the game tag assumed when a request names none.
	DefaultGame string
}

// DefaultLivenessTimeout is used when Config.LivenessTimeout is zero.
const DefaultLivenessTimeout = 20 * time.Second

// Service applies registry, protocol and query operations against a Store. It holds no
// per-lobby state of its own, so any number of requests may use it concurrently.
type Service struct {
	store   Store
	names   NameFilter
	aliases AliasList
	cfg     Config
	logger  *log.Logger

	now        func() time.Time
	drawCode   func() int
	drawSecret func() int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCodeSource replaces the random lobby code draw.
func WithCodeSource(draw func() int) Option {
	return func(s *Service) { s.drawCode = draw }
}

// WithSecretSource replaces the random secret draw.
func WithSecretSource(draw func() int) Option {
	return func(s *Service) { s.drawSecret = draw }
}

// WithLogger sets the logger. The default is logrus' standard logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService wires a Service. names and aliases are read-only lookup tables loaded at startup.
func NewService(store Store, names NameFilter, aliases AliasList, cfg Config, opts ...Option) *Service {
	if cfg.LivenessTimeout <= 0 {
		cfg.LivenessTimeout = DefaultLivenessTimeout
	}
	s := &Service{
		store:      store,
		names:      names,
		aliases:    aliases,
		cfg:        cfg,
		logger:     log.StandardLogger(),
		now:        time.Now,
		drawCode:   randomFourDigits,
		drawSecret: randomFourDigits,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LivenessTimeout reports the configured prune threshold.
func (s *Service) LivenessTimeout() time.Duration {
	return s.cfg.LivenessTimeout
}

// gameOrDefault substitutes the configured default for an empty game tag.
func (s *Service) gameOrDefault(game string) string {
	if game == "" {
		return s.cfg.DefaultGame
	}
	return game
}

// validGame applies the default game tag and bounds its length.
func (s *Service) validGame(game string) (string, error) {
	if len(game) > MaxGameLength {
		return "", fail(ErrInvalidInput, "Invalid game.")
	}
	return s.gameOrDefault(game), nil
}

func randomFourDigits() int {
	return rand.Intn(9000) + 1000
}
