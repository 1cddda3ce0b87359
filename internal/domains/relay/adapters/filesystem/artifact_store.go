// Package filesystem stores POS artifacts as <order id>.bok files, the
// format the POS ingestion job picks up from a shared directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/projection"
)

// Extension is appended to the order id to form the artifact file name.
const Extension = ".bok"

var _ ports.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes artifact bodies into a directory. Saves are atomic
// per file; concurrent saves of one order id are last-write-wins.
//
// A file keeps no creation time, so without a mirror both timestamps are the
// file's mtime. With a mirror, Save reports the mirror's timestamps, which
// keep the first CreatedAt of an order id.
type ArtifactStore struct {
	dir    string
	mirror ports.ArtifactStore
}

type Option func(*ArtifactStore)

// WithMirror also saves every artifact into another store, e.g. Postgres.
// The file stays authoritative: Get only reads the directory.
func WithMirror(mirror ports.ArtifactStore) Option {
	return func(s *ArtifactStore) {
		s.mirror = mirror
	}
}

// NewArtifactStore creates dir when it does not exist.
func NewArtifactStore(dir string, opts ...Option) (*ArtifactStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	s := &ArtifactStore{dir: dir}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Path returns the file an order's artifact is written to.
func (s *ArtifactStore) Path(orderID int64) string {
	return filepath.Join(s.dir, FileName(orderID))
}

// FileName is the artifact file name for an order id.
func FileName(orderID int64) string {
	return strconv.FormatInt(orderID, 10) + Extension
}

func (s *ArtifactStore) Save(ctx context.Context, artifact types.Artifact) (*types.ArtifactProjection, error) {
	if len(artifact.Body) == 0 {
		return nil, errors.New("artifact body is empty")
	}
	path := s.Path(artifact.OrderID)
	if err := writeAtomic(path, artifact.Body); err != nil {
		return nil, err
	}
	if s.mirror != nil {
		mirrored, err := s.mirror.Save(ctx, artifact)
		if err != nil {
			return nil, fmt.Errorf("mirror artifact %d: %w", artifact.OrderID, err)
		}
		return &types.ArtifactProjection{Entity: artifact.Clone(), Metadata: mirrored.Metadata}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &types.ArtifactProjection{
		Entity:   artifact.Clone(),
		Metadata: projection.Metadata{CreatedAt: info.ModTime().UTC(), UpdatedAt: info.ModTime().UTC()},
	}, nil
}

// Get reads the artifact body back. Only OrderID and Body are populated.
func (s *ArtifactStore) Get(_ context.Context, orderID int64) (*types.ArtifactProjection, error) {
	path := s.Path(orderID)
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &types.ArtifactProjection{
		Entity:   types.Artifact{OrderID: orderID, Body: body},
		Metadata: projection.Metadata{CreatedAt: info.ModTime().UTC(), UpdatedAt: info.ModTime().UTC()},
	}, nil
}

func writeAtomic(path string, body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
