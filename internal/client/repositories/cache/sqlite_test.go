package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityhub/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE cache (
  partition TEXT NOT NULL,
  key TEXT NOT NULL,
  payload BLOB NOT NULL,
  cached_at TIMESTAMP NOT NULL,
  PRIMARY KEY (partition, key)
);
`)
	require.NoError(t, err)

	return db
}

func TestPutAndGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, PartitionResources, "list", []byte(`[{"_id":"r1"}]`)))

	payload, cachedAt, err := r.Get(ctx, PartitionResources, "list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"_id":"r1"}]`), payload)
	assert.False(t, cachedAt.IsZero())
}

func TestPut_ReplacesExisting(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, PartitionResources, "list", []byte(`old`)))
	require.NoError(t, r.Put(ctx, PartitionResources, "list", []byte(`new`)))

	payload, _, err := r.Get(ctx, PartitionResources, "list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`new`), payload)
}

func TestGet_Missing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, _, err := r.Get(context.Background(), PartitionResources, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPartitionsAreIsolated(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, PartitionResources, "list", []byte(`resources`)))
	require.NoError(t, r.Put(ctx, PartitionDiscussions, "list", []byte(`discussions`)))

	require.NoError(t, r.DeletePartition(ctx, PartitionResources))

	_, _, err := r.Get(ctx, PartitionResources, "list")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	payload, _, err := r.Get(ctx, PartitionDiscussions, "list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`discussions`), payload)
}

func TestDelete_MissingKeyIsNotAnError(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	assert.NoError(t, r.Delete(context.Background(), PartitionUser, "nope"))
}
