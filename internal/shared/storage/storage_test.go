package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sarakts28/febric-flow-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(config.UploadConfig{Dir: dir, URLPrefix: "uploads/"})

	url, err := store.Save(context.Background(), "articles/a1/img.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/articles/a1/img.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "articles", "a1", "img.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStore_StaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(config.UploadConfig{Dir: dir})

	url, err := store.Save(context.Background(), "../../escape.txt", strings.NewReader("x"), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.txt", url)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
}

func TestNew_FallsBackToLocal(t *testing.T) {
	store := New(context.Background(), config.MinIOConfig{}, config.UploadConfig{Dir: t.TempDir()}, zap.NewNop())
	_, ok := store.(*LocalStore)
	assert.True(t, ok)
}
