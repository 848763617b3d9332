package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/schema"
)

// ListMovies handles GET /movies/. The optional director_id and genre_id
// query parameters narrow the listing and combine with AND. An empty value
// means no filter; a value that is not an integer matches no movie.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	var f model.MovieFilter
	for _, p := range []struct {
		name string
		dst  **int64
	}{{"director_id", &f.DirectorID}, {"genre_id", &f.GenreID}} {
		raw := c.QueryParam(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return pretty(c, http.StatusOK, []schema.Movie{})
		}
		*p.dst = &n
	}

	movies, err := h.Movies.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return pretty(c, http.StatusOK, schema.DumpMovies(movies))
}

// CreateMovie handles POST /movies/. The body keys map directly onto movie
// columns and nothing is validated: undecodable bodies and constraint
// violations are returned to Echo's error handler.
func (h *CatalogHandler) CreateMovie(c echo.Context) error {
	body, err := decodeMovie(c.Request().Body)
	if err != nil {
		return err
	}

	m := body.Model()
	ctx := c.Request().Context()
	if err := h.Movies.Create(ctx, &m); err != nil {
		return err
	}
	h.afterCreate(ctx, m, body)
	return c.NoContent(http.StatusCreated)
}

// afterCreate purges cached listings and announces the new movie. Both steps
// are best effort.
var errMovieBody = errors.New("movie body must be a single JSON object")

// decodeMovie reads exactly one JSON object with known keys from r.
func decodeMovie(r io.Reader) (schema.MoviePayload, error) {
	var body schema.MoviePayload
	raw, err := io.ReadAll(r)
	if err != nil {
		return body, err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return body, errMovieBody
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return body, err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return body, errMovieBody
	}
	return body, nil
}

func (h *CatalogHandler) afterCreate(ctx context.Context, m model.Movie, body schema.MoviePayload) {
	if h.Cache != nil {
		if err := h.Cache.Purge(ctx); err != nil {
			h.Log.Warnw("cache purge failed", "movie_id", m.ID, "error", err)
		}
	}
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ev := queue.MovieCreatedEvent{
		EventID:    uuid.NewString(),
		MovieID:    m.ID,
		Title:      m.Title.String,
		Year:       body.Year,
		GenreID:    body.GenreID,
		DirectorID: body.DirectorID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Events.PublishMovieCreated(ctx, ev); err != nil {
		h.Log.Warnw("movie.created not published", "movie_id", m.ID, "error", err)
	}
}

// GetMovie handles GET /movies/:id. It answers with an array that is empty
// when no movie has the id. Any failure is reported as 404 with its text.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		return echo.ErrNotFound
	}
	movies, err := h.Movies.FindByID(c.Request().Context(), int64(id))
	if err != nil {
		return notFound(c, err)
	}
	return pretty(c, http.StatusOK, schema.DumpMovies(movies))
}
