package tokens

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/constructhub/internal/client/migrations"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))
	return db
}

func drivers(t *testing.T) map[string]Repository {
	t.Helper()

	mr := miniredis.RunT(t)
	rr, err := New(Config{Driver: DriverRedis, Redis: &RedisConfig{Addr: mr.Addr()}}, Dependencies{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rr.Close() })

	sr, err := New(Config{Driver: DriverSQLite}, Dependencies{SQLiteDB: newSQLiteDB(t)})
	require.NoError(t, err)

	mem, err := New(Config{}, Dependencies{})
	require.NoError(t, err)

	return map[string]Repository{
		DriverMemory: mem,
		DriverSQLite: sr,
		DriverRedis:  rr,
	}
}

func TestRepository_Contract(t *testing.T) {
	for name, repo := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.True(t, got.Empty(), "fresh store must be empty")

			require.NoError(t, repo.Save(ctx, models.Tokens{Access: "A", Refresh: "R"}))
			got, err = repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.Tokens{Access: "A", Refresh: "R"}, got)

			require.NoError(t, repo.SaveAccess(ctx, "A2"))
			got, err = repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.Tokens{Access: "A2", Refresh: "R"}, got)

			require.NoError(t, repo.Save(ctx, models.Tokens{Access: "B", Refresh: "S"}))
			got, err = repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.Tokens{Access: "B", Refresh: "S"}, got, "new pair replaces old pair")

			require.NoError(t, repo.Clear(ctx))
			require.NoError(t, repo.Clear(ctx), "clear is idempotent")
			got, err = repo.Load(ctx)
			require.NoError(t, err)
			assert.True(t, got.Empty())
		})
	}
}

func TestRedis_UsesPrefixedKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	repo, err := NewRedis(Config{Redis: &RedisConfig{Addr: mr.Addr(), Prefix: "test:"}})
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Save(context.Background(), models.Tokens{Access: "A", Refresh: "R"}))

	v, err := mr.Get("test:access_token")
	require.NoError(t, err)
	assert.Equal(t, "A", v)
	v, err = mr.Get("test:refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "R", v)
}

func TestRedis_LoadFailsWhenServerGone(t *testing.T) {
	mr := miniredis.RunT(t)
	repo, err := NewRedis(Config{Redis: &RedisConfig{Addr: mr.Addr()}})
	require.NoError(t, err)
	defer repo.Close()

	mr.Close()

	_, err = repo.Load(context.Background())
	require.ErrorContains(t, err, "redis load tokens")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{Driver: "etcd"}, Dependencies{})
	require.ErrorContains(t, err, "unsupported token store driver")

	_, err = New(Config{Driver: DriverSQLite}, Dependencies{})
	require.ErrorContains(t, err, "requires database handle")

	_, err = New(Config{Driver: DriverRedis}, Dependencies{})
	require.ErrorContains(t, err, "redis configuration missing")

	_, err = New(Config{Driver: DriverRedis, Redis: &RedisConfig{}}, Dependencies{})
	require.ErrorContains(t, err, "redis address required")
}
