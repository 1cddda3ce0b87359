//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	"github.com/Apurer/go-gin-order-bridge/internal/platform/migrations"
)

func setupArtifactPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("bridge_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestArtifactStore_SaveAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupArtifactPostgresContainer(t)
	defer cleanup()

	store := NewArtifactStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, types.Artifact{
		OrderID:       64783425355,
		ReceiptID:     "3f1c8c53-6a7e-4d3b-9a43-1f3e2f0c9b10",
		EventID:       "52269077-05f2-4b59-ba4f-36ef8c4c1e11",
		SourceOrderID: "64783425355",
		Body:          []byte(`{"id":64783425355}`),
		Unsupported:   []string{"orderCharges: mapping not yet supported: 1 discount(s)"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(64783425355), saved.Entity.OrderID)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	fetched, err := store.Get(ctx, 64783425355)
	require.NoError(t, err)
	assert.Equal(t, `{"id":64783425355}`, string(fetched.Entity.Body))
	assert.Equal(t, []string{"orderCharges: mapping not yet supported: 1 discount(s)"}, fetched.Entity.Unsupported)
}

func TestArtifactStore_SaveReplaces(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupArtifactPostgresContainer(t)
	defer cleanup()

	store := NewArtifactStore(db)
	ctx := context.Background()

	_, err := store.Save(ctx, types.Artifact{OrderID: 1, ReceiptID: "a", Body: []byte(`{"id":1}`)})
	require.NoError(t, err)
	updated, err := store.Save(ctx, types.Artifact{OrderID: 1, ReceiptID: "b", Body: []byte(`{"id":1,"comment":"x"}`)})
	require.NoError(t, err)
	assert.Equal(t, "b", updated.Entity.ReceiptID)
	assert.Equal(t, `{"id":1,"comment":"x"}`, string(updated.Entity.Body))
	assert.Empty(t, updated.Entity.Unsupported)
}

func TestArtifactStore_GetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupArtifactPostgresContainer(t)
	defer cleanup()

	_, err := NewArtifactStore(db).Get(context.Background(), 404)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
