package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore keeps every document as a JSONB row in the documents table.
type PostgresStore struct {
	pool pgQuerier
}

// NewPostgresStore initializes a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("storage: pgx pool required")
	}
	return &PostgresStore{pool: pool}
}

func newPostgresStoreWithQuerier(q pgQuerier) *PostgresStore {
	if q == nil {
		panic("storage: querier required")
	}
	return &PostgresStore{pool: q}
}

// Insert writes doc as a new row.
func (s *PostgresStore) Insert(ctx context.Context, collection Collection, doc Document) (_ string, err error) {
	if err := checkInsert(collection, doc); err != nil {
		return "", err
	}
	ctx, span := startSpan(ctx, DriverPostgres, "insert", collection)
	defer func() { endSpan(span, err) }()

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("storage: encode document: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO documents (id, collection, body)
		VALUES ($1, $2, $3)
	`
	if _, err := s.pool.Exec(ctx, query, id, string(collection), body); err != nil {
		return "", fmt.Errorf("storage: postgres insert: %w", err)
	}
	return id.String(), nil
}

// ListCollectionNames returns the distinct collections present in the table.
func (s *PostgresStore) ListCollectionNames(ctx context.Context) (_ []string, err error) {
	ctx, span := startSpan(ctx, DriverPostgres, "list_collections", "")
	defer func() { endSpan(span, err) }()

	rows, err := s.pool.Query(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("storage: postgres list collections: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: postgres scan collection: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: postgres list collections: %w", err)
	}
	return names, nil
}
