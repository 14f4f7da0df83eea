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
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("abc123")))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("abc123"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	v, err := r.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyThemeMode, []byte("light")))
	require.NoError(t, r.Set(ctx, KeyThemeMode, []byte("dark")))

	v, err := r.Get(ctx, KeyThemeMode)
	require.NoError(t, err)
	require.Equal(t, []byte("dark"), v)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("x")))
	require.NoError(t, r.Delete(ctx, KeyToken))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Nil(t, v)

	// deleting an absent key is not an error
	require.NoError(t, r.Delete(ctx, KeyToken))

	v, err = r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestClear_RemovesAllKeys(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("t")))
	require.NoError(t, r.Set(ctx, KeyUser, []byte(`{"id":1}`)))
	require.NoError(t, r.Clear(ctx))

	for _, key := range []string{KeyToken, KeyUser} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

func TestSetMany_WritesAllEntries(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	err := r.SetMany(ctx, map[string][]byte{
		KeyToken:            []byte("abc123"),
		KeyUser:             []byte(`{"id":1}`),
		KeySessionTimestamp: []byte("1700000000000"),
	})
	require.NoError(t, err)

	for key, want := range map[string][]byte{
		KeyToken:            []byte("abc123"),
		KeyUser:             []byte(`{"id":1}`),
		KeySessionTimestamp: []byte("1700000000000"),
	} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestSetMany_Upserts(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("old")))
	require.NoError(t, r.SetMany(ctx, map[string][]byte{KeyToken: []byte("new")}))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSetMany_DBErrorNothingWritten(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	err := r.SetMany(ctx, map[string][]byte{KeyToken: []byte("v")})
	require.Error(t, err)
}

func TestGet_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	v, err := r.Get(ctx, KeyToken)
	require.Error(t, err)
	require.Nil(t, v)
	require.Contains(t, err.Error(), "failed to get credentials[token]")
}

func TestSet_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	err := r.Set(ctx, KeyToken, []byte("v"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set credentials[token]")
}

func TestOpen_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSQLiteStore(db)
	require.NoError(t, r.Set(ctx, KeyDeviceID, []byte("dev-1")))

	v, err := r.Get(ctx, KeyDeviceID)
	require.NoError(t, err)
	require.Equal(t, []byte("dev-1"), v)
}
