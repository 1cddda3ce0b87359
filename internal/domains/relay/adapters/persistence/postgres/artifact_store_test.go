package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
)

var errOffline = errors.New("database offline")

// countingPool stands in for a connection and counts every statement sent.
type countingPool struct {
	calls atomic.Int32
}

func (p *countingPool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	p.calls.Add(1)
	return nil, errOffline
}

func (p *countingPool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	p.calls.Add(1)
	return nil, errOffline
}

func (p *countingPool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	p.calls.Add(1)
	return nil, errOffline
}

func (p *countingPool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	p.calls.Add(1)
	return nil
}

func TestNewArtifactStore_DoesNotTouchSchema(t *testing.T) {
	pool := &countingPool{}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: pool}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	before := pool.calls.Load()

	store := NewArtifactStore(db)
	require.NotNil(t, store)
	assert.Equal(t, before, pool.calls.Load())
}

func TestArtifactStore_NilDB(t *testing.T) {
	store := NewArtifactStore(nil)
	_, err := store.Save(context.Background(), types.Artifact{OrderID: 1, Body: []byte(`{"id":1}`)})
	require.Error(t, err)
	_, err = store.Get(context.Background(), 1)
	require.Error(t, err)
}
