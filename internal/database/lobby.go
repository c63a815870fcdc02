// internal/database/lobby.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiburizu/concerto-server/internal/lobby"
	"github.com/shiburizu/concerto-server/internal/models"
)

const uniqueViolation = "23505"

// PostgresStore is a lobby.Store on PostgreSQL. The unique constraints on code and
// alias decide races between concurrent creators.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ lobby.Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an open pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const lobbyColumns = `id, code, secret, next_local_id, visibility, alias, game, created_at`

// Create inserts the lobby row and its players in one transaction.
func (s *PostgresStore) Create(ctx context.Context, l *models.Lobby) error {
	q := `
	INSERT INTO lobbies (` + lobbyColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q,
			l.ID,
			l.Code,
			l.Secret,
			l.NextLocalID,
			string(l.Visibility),
			l.Alias,
			l.Game,
			l.CreatedAt,
		)
		if err != nil {
			return err
		}
		return insertPlayers(ctx, tx, l)
	})
	return mapUniqueViolation(err)
}

// Get fetches a lobby by code.
func (s *PostgresStore) Get(ctx context.Context, code int) (*models.Lobby, error) {
	return loadLobby(ctx, s.pool, `SELECT `+lobbyColumns+` FROM lobbies WHERE code = $1`, code)
}

// GetByAlias fetches a lobby by alias.
func (s *PostgresStore) GetByAlias(ctx context.Context, alias string) (*models.Lobby, error) {
	return loadLobby(ctx, s.pool, `SELECT `+lobbyColumns+` FROM lobbies WHERE alias = $1`, alias)
}

// Update locks the lobby row, applies fn and writes the result back. The player set
// is rewritten wholesale.
func (s *PostgresStore) Update(ctx context.Context, code int, fn func(l *models.Lobby) error) (*models.Lobby, error) {
	var out *models.Lobby
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		l, err := loadLobby(ctx, tx, `SELECT `+lobbyColumns+` FROM lobbies WHERE code = $1 FOR UPDATE`, code)
		if err != nil {
			return err
		}
		if err := fn(l); err != nil {
			return err
		}
		out = l

		if l.Empty() {
			// players go with the lobby via ON DELETE CASCADE
			_, err := tx.Exec(ctx, `DELETE FROM lobbies WHERE id = $1`, l.ID)
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE lobbies SET next_local_id = $2 WHERE id = $1`, l.ID, l.NextLocalID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM players WHERE lobby_id = $1`, l.ID); err != nil {
			return err
		}
		return insertPlayers(ctx, tx, l)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes lobbies by code together with their players.
func (s *PostgresStore) Delete(ctx context.Context, codes ...int) error {
	if len(codes) == 0 {
		return nil
	}
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM lobbies WHERE code = ANY($1)`, codes)
		return err
	})
}

// List returns lobbies matching opts ordered by code.
func (s *PostgresStore) List(ctx context.Context, opts lobby.ListOptions) ([]*models.Lobby, error) {
	q := `
	SELECT ` + lobbyColumns + `
	FROM lobbies l
	WHERE ($1::text = '' OR l.visibility = $1)
	  AND ($2::text = '' OR l.game = $2)
	  AND (NOT $3::boolean OR EXISTS (SELECT 1 FROM players p WHERE p.lobby_id = l.id))
	ORDER BY l.code
	LIMIT NULLIF($4::int, 0)
	`
	rows, err := s.pool.Query(ctx, q, string(opts.Visibility), opts.Game, opts.NonEmpty, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lobbies []*models.Lobby
	byID := make(map[uuid.UUID]*models.Lobby)
	for rows.Next() {
		l, err := scanLobby(rows)
		if err != nil {
			return nil, err
		}
		lobbies = append(lobbies, l)
		byID[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lobbies) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(lobbies))
	for _, l := range lobbies {
		ids = append(ids, l.ID)
	}
	if err := loadPlayers(ctx, s.pool, `WHERE lobby_id = ANY($1)`, ids, byID); err != nil {
		return nil, err
	}
	return lobbies, nil
}

// PlayerCount counts players across all lobbies.
func (s *PostgresStore) PlayerCount(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM players`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func loadLobby(ctx context.Context, q querier, sql string, arg any) (*models.Lobby, error) {
	l, err := scanLobby(q.QueryRow(ctx, sql, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lobby.ErrLobbyNotFound
	}
	if err != nil {
		return nil, err
	}
	byID := map[uuid.UUID]*models.Lobby{l.ID: l}
	if err := loadPlayers(ctx, q, `WHERE lobby_id = $1`, l.ID, byID); err != nil {
		return nil, err
	}
	return l, nil
}

func scanLobby(row pgx.Row) (*models.Lobby, error) {
	var (
		l          models.Lobby
		visibility string
	)
	err := row.Scan(
		&l.ID,
		&l.Code,
		&l.Secret,
		&l.NextLocalID,
		&visibility,
		&l.Alias,
		&l.Game,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Visibility = models.Visibility(visibility)
	l.Players = make(map[int]*models.Player)
	return &l, nil
}

// loadPlayers attaches the players selected by where to their lobbies in byID.
func loadPlayers(ctx context.Context, q querier, where string, arg any, byID map[uuid.UUID]*models.Lobby) error {
	rows, err := q.Query(ctx, `
		SELECT lobby_id, local_id, name, last_seen, status, ip, target
		FROM players `+where+`
		ORDER BY lobby_id, local_id`, arg)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			lobbyID uuid.UUID
			status  string
			p       models.Player
		)
		if err := rows.Scan(&lobbyID, &p.LocalID, &p.Name, &p.LastSeen, &status, &p.IP, &p.Target); err != nil {
			return err
		}
		p.Status = models.Status(status)
		if l, ok := byID[lobbyID]; ok {
			l.Players[p.LocalID] = &p
		}
	}
	return rows.Err()
}

func insertPlayers(ctx context.Context, tx pgx.Tx, l *models.Lobby) error {
	if l.Empty() {
		return nil
	}
	rows := make([][]any, 0, len(l.Players))
	for _, p := range l.SortedPlayers() {
		rows = append(rows, []any{l.ID, p.LocalID, p.Name, p.LastSeen, string(p.Status), p.IP, p.Target})
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"players"},
		[]string{"lobby_id", "local_id", "name", "last_seen", "status", "ip", "target"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to write players: %w", err)
	}
	return nil
}

// mapUniqueViolation turns constraint errors into the store's sentinel errors.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	if pgErr.ConstraintName == "lobbies_alias_key" {
		return lobby.ErrAliasTaken
	}
	return lobby.ErrCodeTaken
}
