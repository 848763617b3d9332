package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the catalog tables. Parents come first so the foreign keys
// on movie resolve. Every movie column except id is nullable.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS director (
		id   INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS genre (
		id   INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS movie (
		id          INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(255) NULL,
		description VARCHAR(255) NULL,
		trailer     VARCHAR(255) NULL,
		year        INT NULL,
		rating      DOUBLE NULL,
		genre_id    INT NULL,
		director_id INT NULL,
		CONSTRAINT fk_movie_genre FOREIGN KEY (genre_id) REFERENCES genre (id),
		CONSTRAINT fk_movie_director FOREIGN KEY (director_id) REFERENCES director (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the catalog schema. It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
