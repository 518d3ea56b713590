// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	for _, dbType := range []string{TypeSQLite, TypePostgres} {
		entries, err := fs.ReadDir(migrationsFS, "migrations/"+dbType)
		require.NoError(t, err, dbType)
		assert.Len(t, entries, 2, "%s: one up and one down file", dbType)
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestMigrate_SQLite(t *testing.T) {
	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "judge.db"))
	require.NoError(t, err)
	defer conn.Close()

	v, _, err := Version(conn, TypeSQLite)
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)

	require.NoError(t, Migrate(conn, TypeSQLite))
	// second run is a no-op
	require.NoError(t, Migrate(conn, TypeSQLite))

	v, dirty, err := Version(conn, TypeSQLite)
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	for _, table := range []string{"participants", "scores"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrate_UniqueSheet(t *testing.T) {
	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "judge.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, Migrate(conn, TypeSQLite))

	insert := `INSERT INTO scores (id, participant_id, judge, section, scores, total, created_at)
		VALUES (?, 'P01', 'Judge A', 'Best Paper', '{}', 20, '2025-11-20 10:00:00')`
	_, err = conn.Exec(insert, "a")
	require.NoError(t, err)

	_, err = conn.Exec(insert, "b")
	assert.Error(t, err, "second sheet for the same judge, participant and section")
}

func TestMigrate_SectionCheck(t *testing.T) {
	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "judge.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, Migrate(conn, TypeSQLite))

	_, err = conn.Exec(`INSERT INTO scores (id, participant_id, judge, section, scores, total, created_at)
		VALUES ('a', 'P01', 'Judge A', 'Best Poster', '{}', 20, '2025-11-20 10:00:00')`)
	assert.Error(t, err)
}
