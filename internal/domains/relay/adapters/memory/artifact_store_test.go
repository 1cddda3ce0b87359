package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
)

func TestArtifactStore_SaveReplacesAndKeepsCreatedAt(t *testing.T) {
	store := NewArtifactStore()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	first, err := store.Save(ctx, types.Artifact{OrderID: 7, ReceiptID: "a", Body: []byte(`{"id":7}`)})
	require.NoError(t, err)
	require.Equal(t, clock, first.Metadata.CreatedAt)

	clock = clock.Add(time.Minute)
	second, err := store.Save(ctx, types.Artifact{OrderID: 7, ReceiptID: "b", Body: []byte(`{"id":7,"v":2}`)})
	require.NoError(t, err)
	require.Equal(t, first.Metadata.CreatedAt, second.Metadata.CreatedAt)
	require.Equal(t, clock, second.Metadata.UpdatedAt)

	got, err := store.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "b", got.Entity.ReceiptID)
	require.JSONEq(t, `{"id":7,"v":2}`, string(got.Entity.Body))
}

func TestArtifactStore_ReturnsCopies(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	body := []byte(`{"id":1}`)
	_, err := store.Save(ctx, types.Artifact{OrderID: 1, Body: body})
	require.NoError(t, err)
	body[2] = 'X'

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	got.Entity.Body[2] = 'Y'

	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, `{"id":1}`, string(again.Entity.Body))
}

func TestArtifactStore_GetMissing(t *testing.T) {
	_, err := NewArtifactStore().Get(context.Background(), 99)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
