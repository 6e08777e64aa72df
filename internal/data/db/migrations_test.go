package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestMigrateUp_FreshDB(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	rows, err := database.Conn().QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var versions []int
	for rows.Next() {
		var v int
		require.NoError(t, rows.Scan(&v))
		versions = append(versions, v)
	}
	require.NoError(t, rows.Err())

	migrations, err := loadMigrations()
	require.NoError(t, err)

	require.Len(t, versions, len(migrations))
	for i, m := range migrations {
		assert.Equal(t, m.Version, versions[i])
	}

	_, err = database.Conn().ExecContext(ctx, "SELECT 1 FROM actions LIMIT 0")
	require.NoError(t, err, "actions table should exist")
}

func TestMigrateUp_Idempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	var count int
	require.NoError(t, second.Conn().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrateDown(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, MigrateDown(ctx, database.Conn(), 1))

	_, err := database.Conn().ExecContext(ctx, "SELECT 1 FROM actions LIMIT 0")
	require.Error(t, err, "actions table should be dropped")

	err = MigrateDown(ctx, database.Conn(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only 0 are applied")

	require.Error(t, MigrateDown(ctx, database.Conn(), 0))
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename  string
		version   int
		name      string
		direction string
		wantErr   bool
	}{
		{filename: "0001_actions.up.sql", version: 1, name: "actions", direction: "up"},
		{filename: "0012_add_index.down.sql", version: 12, name: "add_index", direction: "down"},
		{filename: "0001_actions.sql", wantErr: true},
		{filename: "actions.up.sql", wantErr: true},
		{filename: "0000_zero.up.sql", wantErr: true},
		{filename: "0003_.up.sql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, direction, err := parseFilename(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.direction, direction)
		})
	}
}
