package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// DirectorRepo encapsulates queries on the director table.
type DirectorRepo struct {
	db *sql.DB
}

func NewDirectorRepo(db *sql.DB) *DirectorRepo {
	return &DirectorRepo{db: db}
}

// Create inserts a director. A non-zero d.ID is stored as given.
func (r *DirectorRepo) Create(ctx context.Context, d *model.Director) error {
	id, err := insertNamed(ctx, r.db, "director", d.ID, d.Name)
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

// GetByID fetches a director or returns ErrDirectorNotFound.
func (r *DirectorRepo) GetByID(ctx context.Context, id int64) (*model.Director, error) {
	var d model.Director
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM director WHERE id = ?", id).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDirectorNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListAll returns every director ordered by id.
func (r *DirectorRepo) ListAll(ctx context.Context) ([]model.Director, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM director ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Director{}
	for rows.Next() {
		var d model.Director
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// insertNamed inserts into one of the (id, name) lookup tables.
func insertNamed(ctx context.Context, db *sql.DB, table string, id int64, name sql.NullString) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if id != 0 {
		res, err = db.ExecContext(ctx, "INSERT INTO "+table+" (id, name) VALUES (?, ?)", id, name)
	} else {
		res, err = db.ExecContext(ctx, "INSERT INTO "+table+" (name) VALUES (?)", name)
	}
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
