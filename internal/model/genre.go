package model

import "database/sql"

// Genre represents a row in the `genre` table.
type Genre struct {
	ID   int64          // genre.id
	Name sql.NullString // genre.name
}
