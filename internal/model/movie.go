package model

import "database/sql"

// Movie represents a row in the `movie` table. Every column except the
// primary key is nullable, so the scalar fields use the sql.Null* wrappers.
// A movie optionally references one genre and one director.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title.
//  Description – free text synopsis.
//  Trailer     – URL or reference to a trailer.
//  Year        – release year.
//  Rating      – decimal rating.
//  GenreID     – genre.id this movie belongs to (nullable).
//  DirectorID  – director.id of the director (nullable).
type Movie struct {
	ID          int64           // movie.id
	Title       sql.NullString  // movie.title
	Description sql.NullString  // movie.description
	Trailer     sql.NullString  // movie.trailer
	Year        sql.NullInt64   // movie.year
	Rating      sql.NullFloat64 // movie.rating
	GenreID     sql.NullInt64   // movie.genre_id
	DirectorID  sql.NullInt64   // movie.director_id
}

// MovieProjection is a movie joined with its genre and director. It carries
// the related names instead of the foreign key ids.
type MovieProjection struct {
	ID           int64
	Title        sql.NullString
	Description  sql.NullString
	Trailer      sql.NullString
	Year         sql.NullInt64
	Rating       sql.NullFloat64
	GenreName    sql.NullString // genre.name
	DirectorName sql.NullString // director.name
}

// MovieFilter narrows a movie listing. A nil field means "no filter".
type MovieFilter struct {
	DirectorID *int64
	GenreID    *int64
}
