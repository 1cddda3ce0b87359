package ports

import (
	"context"
	"errors"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
)

var ErrNotFound = errors.New("artifact not found")

// ArtifactStore persists transcoded orders. Saving an existing order id
// replaces the previous artifact.
type ArtifactStore interface {
	Save(ctx context.Context, artifact types.Artifact) (*types.ArtifactProjection, error)
	Get(ctx context.Context, orderID int64) (*types.ArtifactProjection, error)
}
