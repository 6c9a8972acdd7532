// Package pg implementa core.UserRepository sobre PostgreSQL (pgxpool).
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neogulmap/neogulmap/internal/store/core"
)

type Store struct{ pool *pgxpool.Pool }

// Tuning opcional del pool.
type Tuning struct {
	MaxConns    int
	MinConns    int
	MaxLifetime string
}

func New(ctx context.Context, dsn string, t Tuning) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if t.MaxConns > 0 {
		pcfg.MaxConns = int32(t.MaxConns)
	}
	if t.MinConns > 0 {
		pcfg.MinConns = int32(t.MinConns)
	}
	if t.MaxLifetime != "" {
		if d, err := time.ParseDuration(t.MaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Pool expone el pool interno (metrics/migraciones).
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

const userCols = `id, email, nickname, profile_image, oauth_provider, oauth_id, created_at, updated_at`

func scanUser(row pgx.Row) (*core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Email, &u.Nickname, &u.ProfileImage,
		&u.Provider, &u.ProviderID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE lower(email)=lower($1)`, email))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) (*core.User, error) {
	out, err := scanUser(s.pool.QueryRow(ctx, `
INSERT INTO users (id, email, nickname, profile_image, oauth_provider, oauth_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+userCols,
		u.ID, u.Email, u.Nickname, u.ProfileImage, u.Provider, u.ProviderID))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *core.User) (*core.User, error) {
	out, err := scanUser(s.pool.QueryRow(ctx, `
UPDATE users
SET nickname=$2, profile_image=$3, oauth_provider=$4, oauth_id=$5, updated_at=now()
WHERE id=$1
RETURNING `+userCols,
		u.ID, u.Nickname, u.ProfileImage, u.Provider, u.ProviderID))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// mapErr traduce violaciones de UNIQUE (23505) a core.ErrConflict. El
// resolver depende de esta traducción para sobrevivir primeros logins
// concurrentes.
func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return core.ErrConflict
	}
	return err
}
