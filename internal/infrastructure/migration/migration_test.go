package migration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDB struct {
	statements []string
	failOn     string
}

func (r *recordingDB) exec(_ context.Context, sql string) error {
	if r.failOn != "" && strings.Contains(sql, r.failOn) {
		return errors.New("permission denied")
	}
	r.statements = append(r.statements, sql)
	return nil
}

func TestRunAppliesInOrder(t *testing.T) {
	db := &recordingDB{}
	require.NoError(t, run(context.Background(), db, Migrations))

	require.Len(t, db.statements, len(Migrations))
	assert.Contains(t, db.statements[0], "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, db.statements[1], "CREATE TABLE IF NOT EXISTS resume_documents")
}

func TestRunStopsOnFailure(t *testing.T) {
	db := &recordingDB{failOn: "resume_documents ("}
	err := run(context.Background(), db, Migrations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create_resume_documents")
	assert.Len(t, db.statements, 1)
}
