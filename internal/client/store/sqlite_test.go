package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:storetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session_store (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestGet_MissingKeyReturnsNil(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	v, err := repo.Get(context.Background(), KeyAccessToken)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetGet_RoundTrip(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyRefreshToken, []byte("r1")))

	v, err := repo.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, []byte("r1"), v)
}

func TestSet_OverwritesExistingValue(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("a1")))
	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("a2")))

	v, err := repo.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, []byte("a2"), v)
}

func TestDelete_RemovesKey(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyUser, []byte(`{"id":"1"}`)))
	require.NoError(t, repo.Delete(ctx, KeyUser))

	v, err := repo.Get(ctx, KeyUser)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestDelete_MissingKeyIsNoop(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	require.NoError(t, repo.Delete(context.Background(), "nope"))
}

func TestClear_RemovesEverything(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyUser, []byte("u")))
	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("a")))
	require.NoError(t, repo.Set(ctx, KeyRefreshToken, []byte("r")))

	require.NoError(t, repo.Clear(ctx))

	for _, k := range []string{KeyUser, KeyAccessToken, KeyRefreshToken} {
		v, err := repo.Get(ctx, k)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	db, err := Open(context.Background(), "file:storemig?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Set(context.Background(), KeyUser, []byte("x")))
}
