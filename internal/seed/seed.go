// Package seed loads a JSON fixture of directors, genres and movies into the
// catalog. Rows with an explicit id that already exist are skipped, so the
// same fixture can be applied repeatedly.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/schema"
)

// Fixture is the file layout accepted by Apply.
type Fixture struct {
	Directors []schema.Director     `json:"directors"`
	Genres    []schema.Genre        `json:"genres"`
	Movies    []schema.MoviePayload `json:"movies"`
}

// Decode reads a fixture, rejecting unknown keys.
func Decode(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return Fixture{}, errors.New("decode fixture: trailing data after the fixture object")
	}
	return f, nil
}

// Summary counts what Apply did.
type Summary struct {
	Created int
	Skipped int
}

// Seeder writes fixtures through the catalog repositories.
type Seeder struct {
	Directors *repository.DirectorRepo
	Genres    *repository.GenreRepo
	Movies    *repository.MovieRepo
}

// Apply inserts the fixture: directors and genres first so movie foreign
// keys resolve. It stops at the first storage error.
func (s *Seeder) Apply(ctx context.Context, f Fixture) (Summary, error) {
	var sum Summary
	for _, d := range f.Directors {
		if d.ID != 0 {
			_, err := s.Directors.GetByID(ctx, d.ID)
			if err == nil {
				sum.Skipped++
				continue
			}
			if !errors.Is(err, repository.ErrDirectorNotFound) {
				return sum, err
			}
		}
		m := d.Model()
		if err := s.Directors.Create(ctx, &m); err != nil {
			return sum, fmt.Errorf("director %d: %w", d.ID, err)
		}
		sum.Created++
	}
	for _, g := range f.Genres {
		if g.ID != 0 {
			_, err := s.Genres.GetByID(ctx, g.ID)
			if err == nil {
				sum.Skipped++
				continue
			}
			if !errors.Is(err, repository.ErrGenreNotFound) {
				return sum, err
			}
		}
		m := g.Model()
		if err := s.Genres.Create(ctx, &m); err != nil {
			return sum, fmt.Errorf("genre %d: %w", g.ID, err)
		}
		sum.Created++
	}
	for _, p := range f.Movies {
		m := p.Model()
		if m.ID != 0 {
			_, err := s.Movies.GetByID(ctx, m.ID)
			if err == nil {
				sum.Skipped++
				continue
			}
			if !errors.Is(err, repository.ErrMovieNotFound) {
				return sum, err
			}
		}
		if err := s.Movies.Create(ctx, &m); err != nil {
			return sum, fmt.Errorf("movie %d: %w", m.ID, err)
		}
		sum.Created++
	}
	return sum, nil
}
