package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sefazor/campus-events-backend/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/app/uploads/", zap.NewNop())
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "banner.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/app/uploads/"))
	require.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))
}

func TestLocalStoreRejects(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads", zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "empty.png", "image/png", strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = store.Save(context.Background(), "big.png", "image/png", bytes.NewReader(make([]byte, MaxImageSize+1)))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestObjectNameExtension(t *testing.T) {
	require.True(t, strings.HasSuffix(objectName("photo", "image/webp"), ".webp"))
	require.True(t, strings.HasSuffix(objectName("photo.jpeg", "image/jpeg"), ".jpeg"))
	require.NotEqual(t, objectName("a.png", "image/png"), objectName("a.png", "image/png"))
}

func TestCloudflareImagesSave(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/acc/images/v1", r.URL.Path)
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		body, _ := io.ReadAll(file)
		require.Equal(t, "banner.png", header.Filename)
		require.Equal(t, "img", string(body))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"result":  map[string]any{"id": "img-1"},
		})
	}))
	defer srv.Close()

	c := NewCloudflareImages(config.CloudflareImagesConfig{AccountID: "acc", Token: "token", Hash: "hash"}, zap.NewNop())
	c.baseURL = srv.URL

	url, err := c.Save(context.Background(), "banner.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)
	require.Equal(t, "https://imagedelivery.net/hash/img-1/public", url)
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(&config.Config{StorageDriver: "ftp"}, zap.NewNop())
	require.Error(t, err)
}
