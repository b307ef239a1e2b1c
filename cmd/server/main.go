package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"food-menu-api/internal/config"
	"food-menu-api/internal/menu"
	"food-menu-api/internal/platform/telegram"
	"food-menu-api/internal/profile"
	"food-menu-api/internal/report"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Logging)

	// 1. Infrastructure
	db := connectDB(cfg.Database, logger)
	if db != nil {
		runMigrations(cfg.Database, logger)
	}

	// 2. Rule table
	rules := menu.DefaultRules()
	if err := rules.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid condition rule table")
	}

	// 3. Services
	var menuRepo menu.Repository
	if db != nil {
		menuRepo = menu.NewRepository(db)
	}
	menuSvc := menu.NewService(menuRepo, rules, logger)
	if menuRepo != nil {
		if err := menuSvc.Reload(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("catalog load failed, serving built-in seed catalog")
		}
	} else {
		logger.Warn().Msg("no database configured, serving built-in seed catalog")
	}

	var reporter profile.Reporter
	if cfg.Report.Enabled {
		tgClient := telegram.NewClient(cfg.Report.Token)
		reporter = report.NewService(tgClient, cfg.Report.Chat, logger)
	}

	var profileRepo profile.Repository
	if db != nil {
		profileRepo = profile.NewRepository(db)
	}
	profileSvc := profile.NewService(profileRepo, menuSvc, reporter, logger)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"message":"Smart Digital Food Menu API","version":%q,"status":"healthy"}`, version)
	})
	r.Route("/api", func(r chi.Router) {
		menu.RegisterRoutes(r, menu.NewHandler(menuSvc))
		profile.RegisterRoutes(r, profile.NewHandler(profileSvc))
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	logger.Info().Str("addr", addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// connectDB retries the connection a few times so the server survives a
// database that comes up later, and returns nil when it never does; the
// service layer then falls back to the seed catalog.
func connectDB(cfg config.DatabaseConfig, logger zerolog.Logger) *sql.DB {
	if cfg.URL == "" {
		return nil
	}
	var (
		db  *sql.DB
		err error
	)
	for i := 0; i < cfg.Attempts; i++ {
		db, err = sql.Open("postgres", cfg.URL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			logger.Info().Msg("connected to database")
			return db
		}
		logger.Info().Int("attempt", i+1).Int("max", cfg.Attempts).Msg("waiting for database")
		time.Sleep(cfg.Delay)
	}
	logger.Warn().Err(err).Msg("could not connect to database")
	return nil
}

func runMigrations(cfg config.DatabaseConfig, logger zerolog.Logger) {
	m, err := migrate.New("file://"+cfg.Migrations, cfg.URL)
	if err != nil {
		logger.Warn().Err(err).Msg("migration init failed")
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Warn().Err(err).Msg("migration up failed")
		return
	}
	logger.Info().Msg("migrations applied")
}
