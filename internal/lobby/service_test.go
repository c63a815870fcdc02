package lobby

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shiburizu/concerto-server/internal/lookup"
	"github.com/shiburizu/concerto-server/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// codeSeq hands out the given codes in order, then repeats the last one.
func codeSeq(codes ...int) func() int {
	var mu sync.Mutex
	i := 0
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c
	}
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type testEnv struct {
	svc   *Service
	store *MemoryStore
	clock *fakeClock
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	logger := discardLogger()

	env := &testEnv{
		store: NewMemoryStore(),
		clock: &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	base := []Option{WithClock(env.clock.Now), WithLogger(logger), WithSecretSource(func() int { return 4242 })}
	env.svc = NewService(
		env.store,
		lookup.NewWordFilter([]string{"darn"}),
		lookup.NewBoundAliases(map[string]string{"mbtl": "x", "open": ""}),
		Config{LivenessTimeout: 20 * time.Second, DefaultGame: "x"},
		append(base, opts...)...,
	)
	return env
}

func code(s *Session) string { return strconv.Itoa(s.Code) }

// TestScenarioFullMatch walks the create/join/challenge/accept/leave flow end to end.
func TestScenarioFullMatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	assert.Equal(t, 1, created.PlayerID)
	assert.Equal(t, 4242, created.Secret)
	assert.GreaterOrEqual(t, created.Code, 1000)
	assert.LessOrEqual(t, created.Code, 9999)
	c, secret := code(created), created.Secret

	joined, err := env.svc.Join(ctx, c, "Bob", "x")
	require.NoError(t, err)
	assert.Equal(t, 2, joined.PlayerID)
	assert.Equal(t, secret, joined.Secret)
	assert.Equal(t, models.Public, joined.Visibility)

	require.NoError(t, env.svc.Challenge(ctx, c, secret, 1, 2, "1.2.3.4"))
	already, err := env.svc.Accept(ctx, c, secret, 2, 1)
	require.NoError(t, err)
	assert.False(t, already)

	want := []PlayingEntry{{Name: "Alice", Opponent: "Bob", ID: 1, TargetID: 2, IP: "1.2.3.4"}}
	for _, id := range []int{1, 2} {
		proj, err := env.svc.Status(ctx, c, secret, id)
		require.NoError(t, err)
		assert.Equal(t, want, proj.Playing)
		assert.Empty(t, proj.Idle)
	}

	require.NoError(t, env.svc.Leave(ctx, c, secret, 1))
	l, err := env.store.Get(ctx, created.Code)
	require.NoError(t, err)
	assert.Len(t, l.Players, 1)
	bob := l.Player(2)
	assert.Equal(t, models.Idle, bob.Status)
	assert.Nil(t, bob.Target)
	assert.Nil(t, bob.IP)

	require.NoError(t, env.svc.Leave(ctx, c, secret, 2))
	_, err = env.store.Get(ctx, created.Code)
	assert.ErrorIs(t, err, ErrLobbyNotFound)

	_, err = env.svc.Status(ctx, c, secret, 2)
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestCreateCodesAreDistinct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seen := map[int]bool{}
	for i := 0; i < 50; i++ {
		s, err := env.svc.Create(ctx, "p"+strconv.Itoa(i), models.Public, "", "x")
		require.NoError(t, err)
		assert.False(t, seen[s.Code], "code %d handed out twice", s.Code)
		seen[s.Code] = true
	}
}

func TestCreateRedrawsOnLiveCollision(t *testing.T) {
	env := newTestEnv(t, WithCodeSource(codeSeq(1111, 1111, 2222)))
	ctx := context.Background()

	first, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	assert.Equal(t, 1111, first.Code)

	second, err := env.svc.Create(ctx, "Bob", models.Public, "", "x")
	require.NoError(t, err)
	assert.Equal(t, 2222, second.Code)
}

func TestCreateReclaimsAbandonedCode(t *testing.T) {
	env := newTestEnv(t, WithCodeSource(codeSeq(1111)))
	ctx := context.Background()

	_, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	env.clock.Advance(21 * time.Second)

	second, err := env.svc.Create(ctx, "Bob", models.Public, "", "x")
	require.NoError(t, err)
	assert.Equal(t, 1111, second.Code)
	assert.Equal(t, []IdleEntry{{Name: "Bob", ID: 1}}, second.Idle)
}

func TestCreateRespectsContext(t *testing.T) {
	env := newTestEnv(t, WithCodeSource(codeSeq(1111)))
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = env.svc.Create(cctx, "Bob", models.Public, "", "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateValidatesName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := map[string]string{
		"":                      "No player name for creator provided.",
		"xXdarnXx":              "Your name contains banned words.",
		"abcdefghijklmnopqrstu": "Your name is too long.",
	}
	for name, msg := range cases {
		_, err := env.svc.Create(ctx, name, models.Public, "", "x")
		assert.ErrorIs(t, err, ErrInvalidInput, name)
		assert.Equal(t, msg, Message(err), name)
	}

	_, err := env.svc.Create(ctx, "abcdefghijklmnopqrst", models.Public, "", "x")
	assert.NoError(t, err, "20 characters is allowed")
}

func TestCreateWithAlias(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s, err := env.svc.Create(ctx, "Alice", models.Public, "open", "x")
	require.NoError(t, err)
	require.NotNil(t, s.Alias)
	assert.Equal(t, "open", *s.Alias)

	_, err = env.svc.Create(ctx, "Bob", models.Public, "open", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Alias already in use.", Message(err))

	unknown, err := env.svc.Create(ctx, "Carol", models.Public, "nope", "x")
	require.NoError(t, err)
	assert.Nil(t, unknown.Alias)

	_, err = env.svc.Create(ctx, "Dave", models.Public, "mbtl", "y")
	assert.ErrorIs(t, err, ErrGameMismatch)
}

func TestCreateReclaimsAbandonedAlias(t *testing.T) {
	env := newTestEnv(t, WithCodeSource(codeSeq(1000, 2000)))
	ctx := context.Background()

	first, err := env.svc.Create(ctx, "Alice", models.Public, "open", "x")
	require.NoError(t, err)
	env.clock.Advance(time.Minute)

	second, err := env.svc.Create(ctx, "Bob", models.Public, "open", "x")
	require.NoError(t, err)
	require.NotNil(t, second.Alias)
	assert.Equal(t, "open", *second.Alias)
	assert.Equal(t, 2000, second.Code)

	_, err = env.store.Get(ctx, first.Code)
	assert.ErrorIs(t, err, ErrLobbyNotFound)
	held, err := env.store.GetByAlias(ctx, "open")
	require.NoError(t, err)
	assert.Equal(t, "Bob", held.NameOf(1))
}

func TestGameTagLength(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	long := strings.Repeat("g", MaxGameLength+1)

	_, err := env.svc.Create(ctx, "Alice", models.Public, "", long)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Invalid game.", Message(err))

	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	_, err = env.svc.Join(ctx, code(created), "Bob", long)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJoinLeaveRestoresCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)

	joined, err := env.svc.Join(ctx, code(created), "Bob", "x")
	require.NoError(t, err)
	require.NoError(t, env.svc.Leave(ctx, code(created), created.Secret, joined.PlayerID))

	l, err := env.store.Get(ctx, created.Code)
	require.NoError(t, err)
	assert.Len(t, l.Players, 1)
}

func TestJoinValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Join(ctx, "", "Bob", "x")
	assert.Equal(t, "Lobby ID is empty", Message(err))
	_, err = env.svc.Join(ctx, "12345678901234567", "Bob", "x")
	assert.Equal(t, "Invalid lobby code", Message(err))
	_, err = env.svc.Join(ctx, "abcd", "Bob", "x")
	assert.Equal(t, "Invalid lobby code.", Message(err))
	_, err = env.svc.Join(ctx, "1234", "", "x")
	assert.Equal(t, "No player name provided.", Message(err))
	_, err = env.svc.Join(ctx, "1234", "Bob", "x")
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestJoinGameMismatchByCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)

	_, err = env.svc.Join(ctx, code(created), "Bob", "y")
	assert.ErrorIs(t, err, ErrGameMismatch)

	l, err := env.store.Get(ctx, created.Code)
	require.NoError(t, err)
	assert.Len(t, l.Players, 1)
}

func TestJoinAliasGameMismatchDoesNotCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Join(ctx, "mbtl", "Bob", "y")
	assert.ErrorIs(t, err, ErrGameMismatch)

	all, err := env.store.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestJoinAliasExistingLobbyOtherGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Join(ctx, "open", "Alice", "x")
	require.NoError(t, err)

	before, err := env.store.GetByAlias(ctx, "open")
	require.NoError(t, err)

	_, err = env.svc.Join(ctx, "open", "Bob", "y")
	assert.ErrorIs(t, err, ErrGameMismatch)

	after, err := env.store.GetByAlias(ctx, "open")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestJoinAliasLazilyCreatesPrivateLobby(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Join(ctx, "mbtl", "Alice", "x")
	require.NoError(t, err)
	assert.Equal(t, 1, first.PlayerID)
	assert.Equal(t, models.Private, first.Visibility)
	require.NotNil(t, first.Alias)
	assert.Equal(t, "mbtl", *first.Alias)

	second, err := env.svc.Join(ctx, "mbtl", "Bob", "x")
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, 2, second.PlayerID)

	// the alias substitutes for the code in later calls
	proj, err := env.svc.Status(ctx, "mbtl", first.Secret, 2)
	require.NoError(t, err)
	assert.Len(t, proj.Idle, 2)
}

func TestJoinEmptyAfterPrune(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)

	env.clock.Advance(25 * time.Second)
	_, err = env.svc.Join(ctx, code(created), "Bob", "x")
	assert.ErrorIs(t, err, ErrEmptyLobby)

	_, err = env.store.Get(ctx, created.Code)
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestStatusRefreshesAndPrunes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	c, secret := code(created), created.Secret
	_, err = env.svc.Join(ctx, c, "Bob", "x")
	require.NoError(t, err)

	// Alice keeps polling, Bob goes silent.
	for i := 0; i < 3; i++ {
		env.clock.Advance(10 * time.Second)
		_, err := env.svc.Status(ctx, c, secret, 1)
		require.NoError(t, err)
	}

	proj, err := env.svc.Status(ctx, c, secret, 1)
	require.NoError(t, err)
	assert.Equal(t, []IdleEntry{{Name: "Alice", ID: 1}}, proj.Idle)

	_, err = env.svc.Status(ctx, c, secret, 2)
	assert.ErrorIs(t, err, ErrNotInLobby)
}

func TestStatusPrunedSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	_, err = env.svc.Join(ctx, code(created), "Bob", "x")
	require.NoError(t, err)

	env.clock.Advance(15 * time.Second)
	_, err = env.svc.Status(ctx, code(created), created.Secret, 2)
	require.NoError(t, err)
	env.clock.Advance(10 * time.Second)

	_, err = env.svc.Status(ctx, code(created), created.Secret, 1)
	assert.ErrorIs(t, err, ErrNotInLobby)
	l, err := env.store.Get(ctx, created.Code)
	require.NoError(t, err)
	assert.Nil(t, l.Player(1))
}

func TestPruneReleasesPeer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	c, secret := code(created), created.Secret
	_, err = env.svc.Join(ctx, c, "Bob", "x")
	require.NoError(t, err)
	require.NoError(t, env.svc.Challenge(ctx, c, secret, 1, 2, "1.2.3.4"))
	_, err = env.svc.Accept(ctx, c, secret, 2, 1)
	require.NoError(t, err)

	env.clock.Advance(15 * time.Second)
	_, err = env.svc.Status(ctx, c, secret, 2)
	require.NoError(t, err)
	env.clock.Advance(10 * time.Second)

	proj, err := env.svc.Status(ctx, c, secret, 2)
	require.NoError(t, err)
	assert.Empty(t, proj.Playing)
	assert.Equal(t, []IdleEntry{{Name: "Bob", ID: 2}}, proj.Idle)
}

func TestMutationsRequireSecret(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	c := code(created)
	bad := created.Secret + 1

	_, err = env.svc.Status(ctx, c, bad, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, env.svc.Challenge(ctx, c, bad, 1, 2, "1.2.3.4"), ErrUnauthorized)
	assert.ErrorIs(t, env.svc.PreAccept(ctx, c, bad, 1, 2), ErrUnauthorized)
	_, err = env.svc.Accept(ctx, c, bad, 1, 2)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, env.svc.End(ctx, c, bad, 1), ErrUnauthorized)
	assert.ErrorIs(t, env.svc.Leave(ctx, c, bad, 1), ErrUnauthorized)

	l, err := env.store.Get(ctx, created.Code)
	require.NoError(t, err)
	assert.Len(t, l.Players, 1)
}

func TestFailedMutationLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	c, secret := code(created), created.Secret
	before, err := env.store.Get(ctx, created.Code)
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.Challenge(ctx, c, secret, 9, 1, "1.2.3.4"), ErrNotInLobby)
	assert.ErrorIs(t, env.svc.Challenge(ctx, c, secret, 1, 2, ""), ErrInvalidInput)

	after, err := env.store.Get(ctx, created.Code)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAcceptAlreadyPlaying(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	c, secret := code(created), created.Secret
	_, err = env.svc.Join(ctx, c, "Bob", "x")
	require.NoError(t, err)
	require.NoError(t, env.svc.Challenge(ctx, c, secret, 1, 2, "1.2.3.4"))

	already, err := env.svc.Accept(ctx, c, secret, 2, 1)
	require.NoError(t, err)
	assert.False(t, already)
	already, err = env.svc.Accept(ctx, c, secret, 1, 2)
	require.NoError(t, err)
	assert.True(t, already)
}

func TestEndAndLeaveUnknownPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	c, secret := code(created), created.Secret

	assert.ErrorIs(t, env.svc.End(ctx, c, secret, 5), ErrNotInLobby)
	assert.NoError(t, env.svc.Leave(ctx, c, secret, 5))
}

func TestListPublic(t *testing.T) {
	env := newTestEnv(t, WithCodeSource(codeSeq(3000, 1000, 2000, 4000)))
	ctx := context.Background()

	_, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, "Bob", models.Private, "", "x")
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, "Carol", models.Public, "", "y")
	require.NoError(t, err)
	env.clock.Advance(15 * time.Second)
	d, err := env.svc.Create(ctx, "Dave", models.Public, "", "x")
	require.NoError(t, err)
	_, err = env.svc.Join(ctx, code(d), "Eve", "x")
	require.NoError(t, err)

	list, err := env.svc.ListPublic(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []Summary{{Code: 3000, Game: "x", Players: 1}, {Code: 4000, Game: "x", Players: 2}}, list)

	// Alice's lobby goes stale and disappears from both the list and the store
	env.clock.Advance(10 * time.Second)
	list, err = env.svc.ListPublic(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []Summary{{Code: 4000, Game: "x", Players: 2}}, list)
	_, err = env.store.Get(ctx, 3000)
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, WithCodeSource(codeSeq(1000, 2000, 3000)))
	ctx := context.Background()

	a, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	_, err = env.svc.Join(ctx, code(a), "Bob", "x")
	require.NoError(t, err)
	_, err = env.svc.Join(ctx, code(a), "Carol", "x")
	require.NoError(t, err)
	require.NoError(t, env.svc.Challenge(ctx, code(a), a.Secret, 1, 2, "1.2.3.4"))
	_, err = env.svc.Accept(ctx, code(a), a.Secret, 2, 1)
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, "Dave", models.Public, "", "y")
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, "Eve", models.Public, "", "x")
	require.NoError(t, err)

	stats, err := env.svc.Stats(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, LobbyStats{Code: 1000, Game: "x", Idle: []string{"Carol"}, Playing: [][2]string{{"Alice", "Bob"}}}, stats[0])
	assert.Equal(t, 2000, stats[1].Code)
}

func TestCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)

	vis, err := env.svc.Check(ctx, code(created))
	require.NoError(t, err)
	assert.Equal(t, models.Public, vis)

	vis, err = env.svc.Check(ctx, "mbtl")
	require.NoError(t, err)
	assert.Equal(t, models.Private, vis)

	_, err = env.svc.Check(ctx, "nope")
	assert.Equal(t, "Invalid lobby ID", Message(err))

	env.clock.Advance(time.Minute)
	_, err = env.svc.Check(ctx, code(created))
	assert.ErrorIs(t, err, ErrLobbyNotFound)
	assert.Equal(t, "Lobby does not exist.", Message(err))
}

func TestSweep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, "Alice", models.Private, "", "x")
	require.NoError(t, err)
	env.clock.Advance(15 * time.Second)
	for i := 0; i < 12; i++ {
		_, err := env.svc.Create(ctx, "p"+strconv.Itoa(i), models.Public, "", "x")
		require.NoError(t, err)
	}
	env.clock.Advance(10 * time.Second)

	res, err := env.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Public, 10)
	assert.Equal(t, 12, res.Players)

	private, err := env.store.List(ctx, ListOptions{Visibility: models.Private})
	require.NoError(t, err)
	assert.Empty(t, private, "stale private lobby is swept")
}

func TestConcurrentAcceptConverges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, "Alice", models.Public, "", "x")
	require.NoError(t, err)
	c, secret := code(created), created.Secret
	_, err = env.svc.Join(ctx, c, "Bob", "x")
	require.NoError(t, err)
	require.NoError(t, env.svc.Challenge(ctx, c, secret, 1, 2, "1.2.3.4"))

	var wg sync.WaitGroup
	for _, pair := range [][2]int{{1, 2}, {2, 1}} {
		wg.Add(1)
		go func(id, target int) {
			defer wg.Done()
			_, err := env.svc.Accept(ctx, c, secret, id, target)
			assert.NoError(t, err)
		}(pair[0], pair[1])
	}
	wg.Wait()

	l, err := env.store.Get(ctx, created.Code)
	require.NoError(t, err)
	assert.Equal(t, models.Playing, l.Player(1).Status)
	assert.Equal(t, models.Playing, l.Player(2).Status)
	assert.True(t, l.Player(1).Targets(2))
	assert.True(t, l.Player(2).Targets(1))
	assert.Equal(t, *l.Player(1).IP, *l.Player(2).IP)
}
