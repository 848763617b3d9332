// Package repository contains data access logic separated from HTTP handlers.
// This file holds the movie queries: filtered listing, lookup by id, the
// genre/director join used by the browse endpoints, and creation.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

const movieColumns = "id, title, description, trailer, year, rating, genre_id, director_id"

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// List returns movies matching the filter ordered by id. An empty filter
// returns every movie; when both ids are set they are combined with AND.
func (r *MovieRepo) List(ctx context.Context, f model.MovieFilter) ([]model.Movie, error) {
	where := []string{}
	args := []any{}
	if f.DirectorID != nil {
		where = append(where, "director_id = ?")
		args = append(args, *f.DirectorID)
	}
	if f.GenreID != nil {
		where = append(where, "genre_id = ?")
		args = append(args, *f.GenreID)
	}

	q := "SELECT " + movieColumns + " FROM movie"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"
	return r.query(ctx, q, args...)
}

// FindByID returns the movies whose id equals id. The result holds at most
// one element and is empty, not an error, when nothing matches.
func (r *MovieRepo) FindByID(ctx context.Context, id int64) ([]model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movie WHERE id = ?"
	return r.query(ctx, q, id)
}

// GetByID fetches a single movie and returns ErrMovieNotFound when absent.
func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movie WHERE id = ?"
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Description, &m.Trailer,
		&m.Year, &m.Rating, &m.GenreID, &m.DirectorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) query(ctx context.Context, q string, args ...any) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Trailer,
			&m.Year, &m.Rating, &m.GenreID, &m.DirectorID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const projectionSelect = `SELECT m.id, m.title, m.description, m.trailer, m.year, m.rating, g.name, d.name
	FROM movie m
	JOIN genre g    ON g.id = m.genre_id
	JOIN director d ON d.id = m.director_id`

// ListByDirector joins movies with their genre and director and returns the
// rows directed by directorID. Movies without a genre or a director are not
// part of the join.
func (r *MovieRepo) ListByDirector(ctx context.Context, directorID int64) ([]model.MovieProjection, error) {
	return r.project(ctx, projectionSelect+" WHERE m.director_id = ? ORDER BY m.id", directorID)
}

// ListByGenre is the genre counterpart of ListByDirector.
func (r *MovieRepo) ListByGenre(ctx context.Context, genreID int64) ([]model.MovieProjection, error) {
	return r.project(ctx, projectionSelect+" WHERE m.genre_id = ? ORDER BY m.id", genreID)
}

func (r *MovieRepo) project(ctx context.Context, q string, args ...any) ([]model.MovieProjection, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MovieProjection{}
	for rows.Next() {
		var p model.MovieProjection
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Trailer,
			&p.Year, &p.Rating, &p.GenreName, &p.DirectorName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts m inside a transaction. When m.ID is non-zero the row is
// stored under that id; otherwise the auto-generated id is written back.
// No validation happens here: constraint violations come back as driver errors.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) (err error) {
	cols := []string{"title", "description", "trailer", "year", "rating", "genre_id", "director_id"}
	args := []any{m.Title, m.Description, m.Trailer, m.Year, m.Rating, m.GenreID, m.DirectorID}
	if m.ID != 0 {
		cols = append([]string{"id"}, cols...)
		args = append([]any{m.ID}, args...)
	}
	q := "INSERT INTO movie (" + strings.Join(cols, ", ") + ") VALUES (?" +
		strings.Repeat(", ?", len(cols)-1) + ")"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}
