package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/schema"
)

// MoviesByGenre handles GET /genres/?genre_id=, mirroring MoviesByDirector.
func (h *CatalogHandler) MoviesByGenre(c echo.Context) error {
	id, ok := lookupID(c, "genre_id")
	if !ok {
		return c.NoContent(http.StatusOK)
	}
	rows, err := h.Movies.ListByGenre(c.Request().Context(), id)
	if err != nil {
		return notFound(c, err)
	}
	return pretty(c, http.StatusOK, schema.DumpProjections(rows))
}
