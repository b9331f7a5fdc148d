package server

import (
	"context"
	"fmt"
	"io"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists eval/run-utm history to Postgres. The zero value is
// not usable; build one with Open or OpenEmbedded.
type Store struct {
	pool *pgxpool.Pool
	emb  *embeddedpostgres.EmbeddedPostgres // set only when OpenEmbedded started one
}

// Open connects to an already-running Postgres at connString and
// ensures the eval_history table exists.
func Open(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("server: connect to postgres: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// OpenEmbedded starts a local, disposable Postgres instance (no
// external server required) and opens a Store against it — useful for
// running cmd/ailispd with zero configuration. Close stops the embedded
// server along with releasing the pool.
func OpenEmbedded(ctx context.Context, port uint32) (*Store, error) {
	cfg := embeddedpostgres.DefaultConfig().
		Username("ailisp").
		Password("ailisp").
		Database("ailisp").
		Port(port).
		Logger(io.Discard)
	emb := embeddedpostgres.NewDatabase(cfg)
	if err := emb.Start(); err != nil {
		return nil, fmt.Errorf("server: start embedded postgres: %w", err)
	}
	s, err := Open(ctx, cfg.GetConnectionURL())
	if err != nil {
		emb.Stop()
		return nil, err
	}
	s.emb = emb
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS eval_history (
	id          BIGSERIAL PRIMARY KEY,
	request_id  TEXT NOT NULL,
	source      TEXT NOT NULL,
	result      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	if err != nil {
		return fmt.Errorf("server: migrate eval_history: %w", err)
	}
	return nil
}

// SaveEval records one request's source text and rendered result.
func (s *Store) SaveEval(ctx context.Context, requestID, source, result string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO eval_history (request_id, source, result) VALUES ($1, $2, $3)`,
		requestID, source, result)
	return err
}

// Close releases the connection pool and, if this Store started one,
// stops the embedded Postgres server.
func (s *Store) Close() {
	s.pool.Close()
	if s.emb != nil {
		s.emb.Stop()
	}
}
