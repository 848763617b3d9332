package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// UseCommon installs the middleware every request goes through: a UUID
// request id, panic recovery and the structured request log.
func UseCommon(e *echo.Echo, log *zap.SugaredLogger) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
}

// RegisterRoutes registers non-catalog routes on the provided Echo instance.
// At the moment it only exposes a health check endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// CatalogOptions carries the middleware wrapped around the catalog groups.
// Nil middleware is skipped. An empty JWTSecret leaves POST /movies/ open.
type CatalogOptions struct {
	RateLimit echo.MiddlewareFunc
	Cache     echo.MiddlewareFunc
	JWTSecret string
}

// RegisterCatalog registers the movies, directors and genres groups. Every
// collection route answers both with and without the trailing slash.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, opts CatalogOptions) {
	var mws []echo.MiddlewareFunc
	for _, m := range []echo.MiddlewareFunc{opts.RateLimit, opts.Cache} {
		if m != nil {
			mws = append(mws, m)
		}
	}

	guard := []echo.MiddlewareFunc{
		middleware.JWTAuth(opts.JWTSecret),
		middleware.RequireRole(opts.JWTSecret != "", utils.RoleEditor),
	}

	movies := e.Group("/movies", mws...)
	for _, p := range []string{"", "/"} {
		movies.GET(p, h.ListMovies)
		movies.POST(p, h.CreateMovie, guard...)
	}
	movies.GET("/:id", h.GetMovie)

	directors := e.Group("/directors", mws...)
	directors.GET("", h.MoviesByDirector)
	directors.GET("/", h.MoviesByDirector)

	genres := e.Group("/genres", mws...)
	genres.GET("", h.MoviesByGenre)
	genres.GET("/", h.MoviesByGenre)
}
