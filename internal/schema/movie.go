package schema

import (
	"github.com/iliyamo/movie-catalog/internal/model"
)

// Movie is the wire form of a movie row.
type Movie struct {
	ID          int64    `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int64   `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreID     *int64   `json:"genre_id"`
	DirectorID  *int64   `json:"director_id"`
}

// ProjectedMovie is what the movie schema yields for a joined row. The join
// selects genre and director names rather than ids, so the genre_id and
// director_id fields have no source and are left out; the names are dropped
// because the movie schema has no field for them.
type ProjectedMovie struct {
	ID          int64    `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int64   `json:"year"`
	Rating      *float64 `json:"rating"`
}

// DumpMovie serializes a single movie.
func DumpMovie(m model.Movie) Movie {
	return Movie{
		ID:          m.ID,
		Title:       nullString(m.Title),
		Description: nullString(m.Description),
		Trailer:     nullString(m.Trailer),
		Year:        nullInt(m.Year),
		Rating:      nullFloat(m.Rating),
		GenreID:     nullInt(m.GenreID),
		DirectorID:  nullInt(m.DirectorID),
	}
}

// DumpMovies serializes many movies. The result is never nil so an empty
// listing encodes as [].
func DumpMovies(ms []model.Movie) []Movie {
	out := make([]Movie, 0, len(ms))
	for _, m := range ms {
		out = append(out, DumpMovie(m))
	}
	return out
}

// DumpProjections serializes joined rows through the movie schema.
func DumpProjections(ps []model.MovieProjection) []ProjectedMovie {
	out := make([]ProjectedMovie, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProjectedMovie{
			ID:          p.ID,
			Title:       nullString(p.Title),
			Description: nullString(p.Description),
			Trailer:     nullString(p.Trailer),
			Year:        nullInt(p.Year),
			Rating:      nullFloat(p.Rating),
		})
	}
	return out
}

// MoviePayload is the body accepted when creating a movie. Keys map directly
// to movie columns; omitted or null keys are stored as NULL.
type MoviePayload struct {
	ID          *int64   `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int64   `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreID     *int64   `json:"genre_id"`
	DirectorID  *int64   `json:"director_id"`
}

// Model converts the payload into a row ready for insertion.
func (p MoviePayload) Model() model.Movie {
	return model.Movie{
		ID:          deref(p.ID),
		Title:       toNullString(p.Title),
		Description: toNullString(p.Description),
		Trailer:     toNullString(p.Trailer),
		Year:        toNullInt(p.Year),
		Rating:      toNullFloat(p.Rating),
		GenreID:     toNullInt(p.GenreID),
		DirectorID:  toNullInt(p.DirectorID),
	}
}
