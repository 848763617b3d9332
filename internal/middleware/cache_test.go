package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestResponseCacheHitAfterMiss(t *testing.T) {
	_, rdb := newRedis(t)
	rc := NewResponseCache(cacheConfig(), rdb, zap.NewNop().Sugar())

	calls := 0
	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/movies/:id", func(c echo.Context) error {
		calls++
		return c.JSONPretty(http.StatusOK, []string{c.Param("id")}, "    ")
	})

	first := serve(e, http.MethodGet, "/movies/1")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := serve(e, http.MethodGet, "/movies/1")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get(echo.HeaderContentType), second.Header().Get(echo.HeaderContentType))

	other := serve(e, http.MethodGet, "/movies/2")
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestResponseCacheSkipsErrorsAndPosts(t *testing.T) {
	_, rdb := newRedis(t)
	rc := NewResponseCache(cacheConfig(), rdb, zap.NewNop().Sugar())

	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/broken", func(c echo.Context) error { return c.JSON(http.StatusNotFound, "boom") })
	e.POST("/movies", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })

	serve(e, http.MethodGet, "/broken")
	assert.Equal(t, "MISS", serve(e, http.MethodGet, "/broken").Header().Get("X-Cache"))
	assert.Empty(t, serve(e, http.MethodPost, "/movies").Header().Get("X-Cache"))
}

func TestResponseCachePurge(t *testing.T) {
	mr, rdb := newRedis(t)
	rc := NewResponseCache(cacheConfig(), rdb, zap.NewNop().Sugar())
	require.NoError(t, mr.Set("other:key", "keep"))

	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/movies", func(c echo.Context) error { return c.JSON(http.StatusOK, []int{}) })
	serve(e, http.MethodGet, "/movies")
	serve(e, http.MethodGet, "/movies?director_id=1")
	require.Len(t, mr.Keys(), 3)

	require.NoError(t, rc.Purge(context.Background()))
	assert.Equal(t, []string{"cache:gen", "other:key"}, mr.Keys())
	assert.Equal(t, "MISS", serve(e, http.MethodGet, "/movies").Header().Get("X-Cache"))
}

func TestResponseCacheIgnoresReadsRacingPurge(t *testing.T) {
	_, rdb := newRedis(t)
	rc := NewResponseCache(cacheConfig(), rdb, zap.NewNop().Sugar())

	stored := "1"
	purgeDuringRead := true
	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/movies", func(c echo.Context) error {
		v := stored
		if purgeDuringRead {
			// a create commits and purges while this read is in flight
			purgeDuringRead = false
			stored = "2"
			require.NoError(t, rc.Purge(c.Request().Context()))
		}
		return c.String(http.StatusOK, v)
	})

	stale := serve(e, http.MethodGet, "/movies")
	assert.Equal(t, "1", stale.Body.String())

	fresh := serve(e, http.MethodGet, "/movies")
	assert.Equal(t, "MISS", fresh.Header().Get("X-Cache"))
	assert.Equal(t, "2", fresh.Body.String())

	hit := serve(e, http.MethodGet, "/movies")
	assert.Equal(t, "HIT", hit.Header().Get("X-Cache"))
	assert.Equal(t, "2", hit.Body.String())
}

func TestResponseCacheBehindRateLimiter(t *testing.T) {
	_, rdb := newRedis(t)
	log := zap.NewNop().Sugar()
	rc := NewResponseCache(cacheConfig(), rdb, log)

	e := echo.New()
	g := e.Group("/movies", NewTokenBucket(t.Context(), limitConfig(10), rdb, log), rc.Middleware())
	g.GET("/", func(c echo.Context) error { return c.JSON(http.StatusOK, []int{1}) })

	for i := 1; i <= 4; i++ {
		rec := serve(e, http.MethodGet, "/movies/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{strconv.Itoa(10 - i)}, rec.Header().Values("X-RateLimit-Remaining"), "request %d", i)
		assert.Equal(t, []string{"10"}, rec.Header().Values("X-RateLimit-Limit"), "request %d", i)
	}
}

func TestReplayable(t *testing.T) {
	for _, h := range []string{"Content-Type", "Vary"} {
		assert.True(t, replayable(h), h)
	}
	for _, h := range []string{"Content-Length", "X-Cache", "X-Request-Id", "X-Ratelimit-Remaining", "X-RateLimit-Key", "Retry-After"} {
		assert.False(t, replayable(h), h)
	}
}

func TestResponseCacheDisabled(t *testing.T) {
	rc := NewResponseCache(cacheConfig(), nil, zap.NewNop().Sugar())
	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/movies", func(c echo.Context) error { return c.String(http.StatusOK, "x") })

	assert.Empty(t, serve(e, http.MethodGet, "/movies").Header().Get("X-Cache"))
	assert.NoError(t, rc.Purge(context.Background()))
}

func TestPayloadCodec(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`[1]`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, got)
	assert.Equal(t, `[1]`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}
