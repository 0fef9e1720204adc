package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

const (
	uniqueViolation = "23505"

	shortCodeConstraint = "url_mappings_short_code_key"
	longURLConstraint   = "url_mappings_long_url_key"
)

// Schema creates the url_mappings table. Both unique constraints are named so
// that insert conflicts can be told apart.
const Schema = `
	CREATE TABLE IF NOT EXISTS url_mappings (
		id         BIGSERIAL PRIMARY KEY,
		short_code VARCHAR(6) NOT NULL,
		long_url   VARCHAR(2048) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT url_mappings_short_code_key UNIQUE (short_code),
		CONSTRAINT url_mappings_long_url_key UNIQUE (long_url)
	)
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed mapping store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the mapping table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, Schema)

	return err
}

func (p *PostgresStore) FindByLongURL(ctx context.Context, url string) (*shortener.Mapping, error) {
	query := `
		SELECT id, short_code, long_url, created_at
		FROM url_mappings
		WHERE long_url = $1
	`

	return p.findOne(ctx, query, url)
}

func (p *PostgresStore) FindByShortCode(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	query := `
		SELECT id, short_code, long_url, created_at
		FROM url_mappings
		WHERE short_code = $1
	`

	return p.findOne(ctx, query, string(code))
}

func (p *PostgresStore) findOne(ctx context.Context, query string, arg string) (*shortener.Mapping, error) {
	var m shortener.Mapping

	var code string

	err := p.pool.QueryRow(ctx, query, arg).Scan(&m.ID, &code, &m.LongURL, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	m.ShortCode = shortener.Code(code)

	return &m, nil
}

func (p *PostgresStore) Insert(ctx context.Context, m *shortener.Mapping) (shortener.InsertResult, error) {
	query := `
		INSERT INTO url_mappings (short_code, long_url, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := p.pool.QueryRow(ctx, query, string(m.ShortCode), m.LongURL, m.CreatedAt).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if result, ok := classifyInsertError(err); ok {
			return result, nil
		}

		return 0, err
	}

	return shortener.InsertCreated, nil
}

// classifyInsertError maps unique violations to insert results.
func classifyInsertError(err error) (shortener.InsertResult, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return 0, false
	}

	switch pgErr.ConstraintName {
	case longURLConstraint:
		return shortener.InsertAlreadyExists, true
	case shortCodeConstraint:
		return shortener.InsertCollision, true
	default:
		return 0, false
	}
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

var _ shortener.Repository = (*PostgresStore)(nil)
