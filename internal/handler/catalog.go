// Package handler exposes the HTTP handlers of the movie catalog: the movies
// collection, single movie lookup, and the director and genre browse
// endpoints. Responses are pretty-printed JSON with a four space indent.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

const jsonIndent = "    "

// CachePurger drops cached responses after the catalog changes.
type CachePurger interface {
	Purge(ctx context.Context) error
}

// EventPublisher announces new movies to the broker.
type EventPublisher interface {
	PublishMovieCreated(ctx context.Context, ev queue.MovieCreatedEvent) error
}

// CatalogHandler bundles the dependencies of every catalog endpoint. Cache
// and Events are optional; a nil value skips the step.
type CatalogHandler struct {
	Movies *repository.MovieRepo
	Cache  CachePurger
	Events EventPublisher
	Log    *zap.SugaredLogger
}

// NewCatalogHandler constructs a CatalogHandler and panics if the movie
// repository or the logger is missing.
func NewCatalogHandler(movies *repository.MovieRepo, cache CachePurger, events EventPublisher, log *zap.SugaredLogger) *CatalogHandler {
	if movies == nil || log == nil {
		panic("nil dependency passed to NewCatalogHandler")
	}
	return &CatalogHandler{Movies: movies, Cache: cache, Events: events, Log: log}
}

func pretty(c echo.Context, code int, v any) error {
	return c.JSONPretty(code, v, jsonIndent)
}

// notFound renders any lookup failure as its text with a 404.
func notFound(c echo.Context, err error) error {
	return pretty(c, http.StatusNotFound, err.Error())
}

// lookupID reads an integer query parameter for the browse endpoints.
// Missing, malformed and zero values all count as absent.
func lookupID(c echo.Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(c.QueryParam(name)), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
