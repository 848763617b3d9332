// Command seed applies a JSON fixture of directors, genres and movies to the
// catalog database, creating the schema first when DB_AUTO_MIGRATE allows.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/logger"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/seed"
)

func main() {
	path := flag.String("file", "fixtures.json", "fixture file")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.IsDev())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	f, err := os.Open(*path)
	if err != nil {
		lg.Fatalw("open fixture", "file", *path, "error", err)
	}
	fixture, err := seed.Decode(f)
	_ = f.Close()
	if err != nil {
		lg.Fatalw("read fixture", "file", *path, "error", err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		lg.Fatalw("open database", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			lg.Fatalw("migrate", "error", err)
		}
	}

	directors, genres := repository.NewDirectorRepo(db), repository.NewGenreRepo(db)
	s := &seed.Seeder{Directors: directors, Genres: genres, Movies: repository.NewMovieRepo(db)}
	sum, err := s.Apply(ctx, fixture)
	if err != nil {
		lg.Fatalw("seed failed", "created", sum.Created, "error", err)
	}

	ds, err := directors.ListAll(ctx)
	if err != nil {
		lg.Fatalw("count directors", "error", err)
	}
	gs, err := genres.ListAll(ctx)
	if err != nil {
		lg.Fatalw("count genres", "error", err)
	}
	lg.Infow("seed applied", "file", *path, "created", sum.Created, "skipped", sum.Skipped,
		"directors", len(ds), "genres", len(gs))
}
