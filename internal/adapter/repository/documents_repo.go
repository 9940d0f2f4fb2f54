package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"resume-forge/internal/domain"
	"resume-forge/internal/model"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

// DocumentsRepo mirrors resume documents into the resume_documents JSONB
// table, one mutable row per key ("users/<uid>").
type DocumentsRepo struct {
	pool *pgxpool.Pool
}

func NewDocumentsRepo(pool *pgxpool.Pool) *DocumentsRepo {
	return &DocumentsRepo{pool: pool}
}

func (r *DocumentsRepo) Set(ctx context.Context, key string, doc model.Document) error {
	body, err := model.Encode(doc)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO resume_documents (key, user_id, document, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (key) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		key, ownerOf(key), string(body), time.Now().UTC())
	if err != nil {
		return errors.Wrapf(err, "upsert document %s", key)
	}
	return nil
}

func (r *DocumentsRepo) Get(ctx context.Context, key string) (model.Document, error) {
	raw, err := queryJSON(ctx, r.pool, `SELECT document FROM resume_documents WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Document{}, domain.ErrNotFound
		}
		return model.Document{}, errors.Wrapf(err, "select document %s", key)
	}
	return model.Decode(raw)
}

// Ping reports whether the pool can reach the database.
func (r *DocumentsRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// queryJSON runs a query returning a single json value and hands back its
// raw bytes.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, sql string, args ...interface{}) ([]byte, error) {
	var raw json.RawMessage
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ownerOf extracts the user id segment of "users/<uid>".
func ownerOf(key string) string {
	_, id, ok := strings.Cut(key, "/")
	if !ok {
		return key
	}
	return id
}
