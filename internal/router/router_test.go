package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

const secret = "router-test-secret"

func newServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := zap.NewNop().Sugar()
	e := echo.New()
	UseCommon(e, log)
	RegisterRoutes(e)
	h := handler.NewCatalogHandler(repository.NewMovieRepo(db), nil, nil, log)
	RegisterCatalog(e, h, CatalogOptions{JWTSecret: secret})
	return e, mock
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{"title":"Stalker"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	e, _ := newServer(t)
	rec := serve(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestCollectionRoutesWithAndWithoutSlash(t *testing.T) {
	e, mock := newServer(t)
	for _, p := range []string{"/movies", "/movies/"} {
		mock.ExpectQuery("FROM movie ORDER BY id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "trailer", "year", "rating", "genre_id", "director_id"}))
		rec := serve(e, http.MethodGet, p, "")
		assert.Equal(t, http.StatusOK, rec.Code, p)
		assert.JSONEq(t, `[]`, rec.Body.String(), p)
	}
	for _, p := range []string{"/directors", "/genres/"} {
		rec := serve(e, http.MethodGet, p, "")
		assert.Equal(t, http.StatusOK, rec.Code, p)
		assert.Empty(t, rec.Body.String(), p)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGuard(t *testing.T) {
	e, mock := newServer(t)

	rec := serve(e, http.MethodPost, "/movies/", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	viewer, err := utils.NewAccessToken(secret, "alice", "VIEWER", 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodPost, "/movies", viewer.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	forged, err := utils.NewAccessToken("other", "mallory", utils.RoleEditor, 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodPost, "/movies/", forged.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO movie").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()
	editor, err := utils.NewAccessToken(secret, "bob", utils.RoleEditor, 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodPost, "/movies/", editor.Token)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
