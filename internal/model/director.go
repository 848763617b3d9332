package model

import "database/sql"

// Director represents a row in the `director` table.
type Director struct {
	ID   int64          // director.id
	Name sql.NullString // director.name
}
