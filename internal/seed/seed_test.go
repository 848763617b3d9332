package seed

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/repository"
)

const fixtureJSON = `{
	"directors": [{"id": 1, "name": "Андрей Тарковский"}],
	"genres": [{"id": 2, "name": "Drama"}, {"name": "Sci-Fi"}],
	"movies": [{"id": 5, "title": "Solaris", "year": 1972, "genre_id": 2, "director_id": 1}]
}`

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"actors": []}`))
	assert.ErrorContains(t, err, "decode fixture")
	_, err = Decode(strings.NewReader(`{"genres": []} {"movies": []}`))
	assert.ErrorContains(t, err, "trailing data")

	f, err := Decode(strings.NewReader(fixtureJSON))
	require.NoError(t, err)
	assert.Len(t, f.Genres, 2)
	assert.Equal(t, "Solaris", *f.Movies[0].Title)
}

func newSeeder(t *testing.T) (*Seeder, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Seeder{
		Directors: repository.NewDirectorRepo(db),
		Genres:    repository.NewGenreRepo(db),
		Movies:    repository.NewMovieRepo(db),
	}, mock
}

func TestApply(t *testing.T) {
	s, mock := newSeeder(t)
	empty := func(cols ...string) *sqlmock.Rows { return sqlmock.NewRows(cols) }

	mock.ExpectQuery(regexp.QuoteMeta("FROM director WHERE id = ?")).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Андрей Тарковский"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM genre WHERE id = ?")).WithArgs(int64(2)).
		WillReturnRows(empty("id", "name"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO genre (id, name) VALUES (?, ?)")).WithArgs(int64(2), "Drama").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO genre (name) VALUES (?)")).WithArgs("Sci-Fi").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM movie WHERE id = ?")).WithArgs(int64(5)).
		WillReturnRows(empty("id", "title", "description", "trailer", "year", "rating", "genre_id", "director_id"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO movie (id, title")).
		WithArgs(int64(5), "Solaris", nil, nil, int64(1972), nil, int64(2), int64(1)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	f, err := Decode(strings.NewReader(fixtureJSON))
	require.NoError(t, err)
	sum, err := s.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, Summary{Created: 3, Skipped: 1}, sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStopsOnStorageError(t *testing.T) {
	s, mock := newSeeder(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM director WHERE id = ?")).WithArgs(int64(1)).
		WillReturnError(errors.New("access denied"))

	f, err := Decode(strings.NewReader(fixtureJSON))
	require.NoError(t, err)
	_, err = s.Apply(context.Background(), f)
	assert.EqualError(t, err, "access denied")
}
