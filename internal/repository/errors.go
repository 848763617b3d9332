// Package repository defines error types that are reused across the catalog
// repositories. Handlers on the lookup endpoints render any error as text,
// while the seeder and single-row lookups can distinguish missing rows with
// errors.Is.
package repository

import "errors"

// ErrMovieNotFound is returned when a single movie lookup matches no row.
var ErrMovieNotFound = errors.New("movie not found")

// ErrDirectorNotFound is returned when a director cannot be found.
var ErrDirectorNotFound = errors.New("director not found")

// ErrGenreNotFound is returned when a genre cannot be found.
var ErrGenreNotFound = errors.New("genre not found")
