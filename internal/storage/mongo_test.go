package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestMongo(t *testing.T) (*MongoStore, func()) {
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	store := NewMongoStore(db)
	require.NoError(t, store.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func TestMongoStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestMongo(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Load(ctx, "@HealthShopApp:cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "@HealthShopApp:cart", []byte(`[{"id":1,"quantity":1}]`)))
	require.NoError(t, store.Save(ctx, "@HealthShopApp:cart", []byte(`[{"id":1,"quantity":2}]`)))

	value, err := store.Load(ctx, "@HealthShopApp:cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"quantity":2}]`, string(value))

	require.NoError(t, store.Delete(ctx, "@HealthShopApp:cart"))
	_, err = store.Load(ctx, "@HealthShopApp:cart")
	assert.ErrorIs(t, err, ErrNotFound)
}
