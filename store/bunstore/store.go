// Package bunstore provides a SQLite-backed session.Store via Bun, giving
// desktop clients a durable store that shares the database file the rest of
// the application already uses.
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goliatone/go-session"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var _ session.Store = &Store{}

type record struct {
	bun.BaseModel `bun:"table:session_values,alias:sv"`
	Key           string    `bun:"key,pk"`
	Value         []byte    `bun:"value,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// Store keeps session values in a single key/value table.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

// New wraps an existing Bun handle. Call Init before first use.
func New(db *bun.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Open opens (or creates) a SQLite database at path and returns a ready
// store.
func Open(ctx context.Context, path string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, err
	}

	store := New(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := store.Init(ctx); err != nil {
		sqldb.Close()
		return nil, err
	}
	return store, nil
}

// Init creates the backing table when missing.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*record)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	rec := &record{}
	err := s.db.NewSelect().
		Model(rec).
		Where("?TableAlias.key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrKeyNotFound
		}
		return nil, err
	}
	return rec.Value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	rec := &record{Key: key, Value: value, UpdatedAt: s.now()}
	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*record)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	return err
}
