package cache

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDisabledCachePassesThrough(t *testing.T) {
	pc, err := NewPageCache(context.Background(), Options{TTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	require.False(t, pc.Enabled())

	calls := 0
	app := fiber.New()
	app.Get("/", pc.Middleware(), func(c *fiber.Ctx) error {
		calls++
		return c.JSON(fiber.Map{"calls": calls})
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Empty(t, resp.Header.Get(HeaderCache))
	}
	require.Equal(t, 2, calls)

	pc.Revalidate(context.Background(), "/")
	require.NoError(t, pc.Close())
}

func TestNewPageCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewPageCache(ctx, Options{Addr: "127.0.0.1:1"}, zap.NewNop())
	require.Error(t, err)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
