package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

type execer interface {
	exec(ctx context.Context, sql string) error
}

type poolExecer struct {
	pool *pgxpool.Pool
}

func (p poolExecer) exec(ctx context.Context, sql string) error {
	_, err := p.pool.Exec(ctx, sql)
	return err
}

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema steps in the order they are applied. Every
// statement is idempotent.
var Migrations = []Migration{
	{
		Name: "create_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		Name: "create_resume_documents",
		SQL: `CREATE TABLE IF NOT EXISTS resume_documents (
			key TEXT PRIMARY KEY,
			user_id UUID NOT NULL,
			document JSONB NOT NULL DEFAULT '{}'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		Name: "index_resume_documents_user",
		SQL:  `CREATE INDEX IF NOT EXISTS resume_documents_user_id_idx ON resume_documents (user_id)`,
	},
}

// RunMigrations executes all migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return run(ctx, poolExecer{pool}, Migrations)
}

func run(ctx context.Context, db execer, migrations []Migration) error {
	slog.Info("Starting database migrations")
	for _, m := range migrations {
		if err := db.exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return errors.Wrapf(err, "migration %s", m.Name)
		}
		slog.Info("Migration completed", "name", m.Name)
	}
	slog.Info("All migrations completed successfully")
	return nil
}
