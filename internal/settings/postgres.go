package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bitbucket.org/crgw/cover-quote/internal/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const migration = `create table if not exists quote_settings (
	profile text primary key,
	document jsonb not null,
	updated_at timestamptz not null default now()
)`

const selectDocument = `select document from quote_settings where profile = $1`

const upsertDocument = `insert into quote_settings (profile, document, updated_at)
values ($1, $2, now())
on conflict (profile) do update set document = excluded.document, updated_at = now()`

// dbtx is satisfied by *pgxpool.Pool, pgx.Tx and *pgx.Conn.
type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresStore struct {
	db dbtx
}

func NewPostgresStore(db dbtx) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, migration)
	return err
}

func (s *PostgresStore) Load(ctx context.Context, profile string) (schema.Settings, error) {
	var document []byte

	err := s.db.QueryRow(ctx, selectDocument, profile).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return schema.Settings{}, ErrNotFound
	}

	if err != nil {
		return schema.Settings{}, fmt.Errorf("load settings %q: %w", profile, err)
	}

	var settings schema.Settings
	if err := json.Unmarshal(document, &settings); err != nil {
		return schema.Settings{}, fmt.Errorf("decode settings %q: %w", profile, err)
	}

	return settings, nil
}

func (s *PostgresStore) Save(ctx context.Context, profile string, settings schema.Settings) error {
	document, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, upsertDocument, profile, document); err != nil {
		return fmt.Errorf("save settings %q: %w", profile, err)
	}

	return nil
}
