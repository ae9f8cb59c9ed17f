package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/karnakar5511/query-insights/internal/application"
	appanalysis "github.com/karnakar5511/query-insights/internal/application/analysis"
	appinsights "github.com/karnakar5511/query-insights/internal/application/insights"
	"github.com/karnakar5511/query-insights/internal/config"
	domai "github.com/karnakar5511/query-insights/internal/domain/ai"
	domain "github.com/karnakar5511/query-insights/internal/domain/analysis"
	"github.com/karnakar5511/query-insights/internal/infra/ai/gemini"
	"github.com/karnakar5511/query-insights/internal/infra/ai/openai"
	mysqlp "github.com/karnakar5511/query-insights/internal/infra/db/mysql"
	postgresp "github.com/karnakar5511/query-insights/internal/infra/db/postgres"
	"github.com/karnakar5511/query-insights/internal/infra/httpserver"
	"github.com/karnakar5511/query-insights/internal/infra/storage"
	"github.com/karnakar5511/query-insights/internal/middleware"
)

func main() {
	// .env for local runs; ignored when absent
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect the record store
	var db *sql.DB
	var repo domain.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		r := postgresp.NewRecordRepository(db)
		if err := r.EnsureSchema(ctx); err != nil {
			log.Fatalf("postgres schema error: %v", err)
		}
		repo = r
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		r := mysqlp.NewRecordRepository(db)
		if err := r.EnsureSchema(ctx); err != nil {
			log.Fatalf("mysql schema error: %v", err)
		}
		repo = r
	default:
		log.Fatalf("unknown database driver %q", cfg.Database.Driver)
	}
	defer db.Close()

	// pick the generative provider
	var generator domai.Generator
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAI.APIKey == "" {
			log.Fatal("OPENAI_API_KEY is required when ai.provider is openai")
		}
		generator = openai.NewClient(cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model)
	case "gemini":
		if cfg.AI.Gemini.APIKey == "" {
			log.Fatal("GEMINI_API_KEY is required")
		}
		generator = gemini.NewClient(
			cfg.AI.Gemini.APIKey,
			cfg.AI.Gemini.Model,
			cfg.AI.Gemini.BaseURL,
			cfg.GeminiTimeout(),
		)
	default:
		log.Fatalf("unknown ai provider %q", cfg.AI.Provider)
	}

	// optional raw-payload archive
	var archive domai.Archive
	if cfg.Archive.Enabled {
		store, err := storage.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
		archive = store
	}

	analysisSvc := &appanalysis.Service{
		Repo:    repo,
		AI:      generator,
		Archive: archive,
		Clock:   application.SystemClock{},
	}
	insightsSvc := appinsights.NewService(repo)

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Get("/healthz", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(analysisSvc, insightsSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
