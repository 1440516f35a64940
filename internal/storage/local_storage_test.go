package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-rewards-api/internal/config"
	"go.uber.org/zap"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewLocalStorage(LocalStorageConfig{BasePath: dir, BaseURL: "/assets/"})
	require.NoError(t, err)

	ctx := context.Background()
	ref, err := store.Save(ctx, "nova-1a2b3c4d.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	require.Equal(t, "nova-1a2b3c4d.png", ref)
	require.Equal(t, "/assets/nova-1a2b3c4d.png", store.URL(ref))

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, ref))
	require.True(t, os.IsNotExist(err))

	// deleting again is a no-op
	require.NoError(t, store.Delete(ctx, ref))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(LocalStorageConfig{BasePath: t.TempDir(), BaseURL: "/assets"})
	require.NoError(t, err)

	for _, name := range []string{"../escape.png", `..\escape.png`, "", ".."} {
		_, err := store.Save(context.Background(), name, strings.NewReader("x"), 1, "image/png")
		require.ErrorIs(t, err, ErrInvalidAssetName, name)
	}
}

func TestNew_SelectsDriver(t *testing.T) {
	store, err := New(config.StorageConfig{Driver: "local", LocalDir: t.TempDir(), PublicURL: "/assets"}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, "local", store.Name())

	_, err = New(config.StorageConfig{Driver: "ftp"}, zap.NewNop())
	require.Error(t, err)
}
