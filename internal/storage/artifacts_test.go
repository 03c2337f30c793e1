package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	image := []byte{0x89, 0x50, 0x4e, 0x47}
	url, err := store.Save(context.Background(), image)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, PublicImagePath+"/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, PublicImagePath+"/")
	written, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, image, written)
}

func TestDiskStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	_, err := NewDiskStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInlineStore_Save(t *testing.T) {
	store := NewInlineStore()
	url, err := store.Save(context.Background(), []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AQ==", url)
}
