package memory

import (
	"context"
	"sync"
	"time"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/projection"
)

var _ ports.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is an in-memory artifact persistence adapter.
type ArtifactStore struct {
	mu        sync.RWMutex
	artifacts map[int64]*types.ArtifactProjection
	now       func() time.Time
}

func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		artifacts: map[int64]*types.ArtifactProjection{},
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ArtifactStore) Save(_ context.Context, artifact types.Artifact) (*types.ArtifactProjection, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	meta := projection.Metadata{CreatedAt: now, UpdatedAt: now}
	if existing, ok := s.artifacts[artifact.OrderID]; ok {
		meta.CreatedAt = existing.Metadata.CreatedAt
	}
	stored := &types.ArtifactProjection{Entity: artifact.Clone(), Metadata: meta}
	s.artifacts[artifact.OrderID] = stored
	return cloneProjection(stored), nil
}

func (s *ArtifactStore) Get(_ context.Context, orderID int64) (*types.ArtifactProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.artifacts[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProjection(stored), nil
}

func cloneProjection(p *types.ArtifactProjection) *types.ArtifactProjection {
	return &types.ArtifactProjection{Entity: p.Entity.Clone(), Metadata: p.Metadata}
}
