package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/schema"
)

// MoviesByDirector handles GET /directors/?director_id=. Movies are joined
// with their genre and director and serialized through the movie schema.
// Without a usable director_id the response is an empty 200.
func (h *CatalogHandler) MoviesByDirector(c echo.Context) error {
	id, ok := lookupID(c, "director_id")
	if !ok {
		return c.NoContent(http.StatusOK)
	}
	rows, err := h.Movies.ListByDirector(c.Request().Context(), id)
	if err != nil {
		return notFound(c, err)
	}
	return pretty(c, http.StatusOK, schema.DumpProjections(rows))
}
