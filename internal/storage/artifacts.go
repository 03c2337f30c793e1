package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PublicImagePath is where disk-stored artifacts are served from.
const PublicImagePath = "/static/images"

// ArtifactStore persists one generated image and returns the value handed
// back to the client: either a URL under PublicImagePath or an inline
// data URI, depending on the deployment variant.
type ArtifactStore interface {
	Save(ctx context.Context, image []byte) (string, error)
}

type diskStore struct {
	dir string
}

// NewDiskStore returns a store writing PNG files under dir. The directory
// is created up front so a misconfigured path fails at startup, not on the
// first generation.
func NewDiskStore(dir string) (ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

func (s *diskStore) Save(_ context.Context, image []byte) (string, error) {
	name := uuid.NewString() + ".png"
	if err := os.WriteFile(filepath.Join(s.dir, name), image, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return PublicImagePath + "/" + name, nil
}

type inlineStore struct{}

// NewInlineStore returns a store that keeps nothing and hands the image
// back as a data URI.
func NewInlineStore() ArtifactStore {
	return inlineStore{}
}

func (inlineStore) Save(_ context.Context, image []byte) (string, error) {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(image), nil
}
