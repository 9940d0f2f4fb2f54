package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-forge/internal/adapter/http"
	"resume-forge/internal/adapter/objectstore"
	repo "resume-forge/internal/adapter/repository"
	"resume-forge/internal/adapter/session"
	"resume-forge/internal/auth"
	"resume-forge/internal/config"
	"resume-forge/internal/infrastructure/migration"
	"resume-forge/internal/render"
	"resume-forge/internal/storage"
	"resume-forge/internal/usecase"
	ai "resume-forge/pkg/ai"
	"resume-forge/pkg/ai/formatters"
	infra "resume-forge/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(config.NewLogger(cfg.Log, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	var checkers []httpadapter.Checker

	var pool *pgxpool.Pool
	if cfg.UserStore == "postgres" || cfg.DocumentStore == "postgres" {
		var err error
		if pool, err = infra.NewPool(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool); err != nil {
			return err
		}
		checkers = append(checkers, httpadapter.NewCheck("postgres", pool.Ping))
	}

	var users auth.UserRepository = auth.NewMemoryUsers()
	if cfg.UserStore == "postgres" {
		users = repo.NewUsersRepo(pool)
	} else {
		slog.Warn("accounts are kept in memory and lost on restart")
	}

	var remote storage.DocumentStore
	switch cfg.DocumentStore {
	case "postgres":
		remote = repo.NewDocumentsRepo(pool)
	case "mongo":
		db, err := repo.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return err
		}
		defer func() { _ = db.Client().Disconnect(context.Background()) }()
		docs := repo.NewMongoDocuments(db)
		remote = docs
		checkers = append(checkers, httpadapter.NewCheck("mongo", docs.Ping))
	}

	var sessions usecase.SessionStore = session.NewMemory()
	if cfg.SessionStore == "redis" {
		client, err := session.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		rs := session.NewRedis(client, cfg.SessionTTL())
		sessions = rs
		checkers = append(checkers, httpadapter.NewCheck("redis", rs.Ping))
	}

	var images usecase.ImageStore = objectstore.NewLocal(cfg.DataDir)
	if cfg.ImageStore == "minio" {
		m, err := objectstore.NewMinio(ctx, objectstore.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			Region:    cfg.Minio.Region,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			return err
		}
		images = m
	}

	renderer := render.NewEmbedded()
	if cfg.TemplateDir != "" {
		r, err := render.New(os.DirFS(cfg.TemplateDir))
		if err != nil {
			return err
		}
		renderer = r
	}

	var narrator usecase.Narrator
	if cfg.LLM.Enabled {
		narrator = formatters.NewNarrator(ai.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLMTimeout()))
	}

	dataDir := cfg.DataDir
	checkers = append(checkers, httpadapter.NewCheck("data_dir", func(context.Context) error {
		return errors.Wrap(os.MkdirAll(dataDir, 0o755), dataDir)
	}))

	store := storage.New(cfg.DataDir, remote)
	wizard := usecase.NewWizard(sessions, store, images)
	processor := usecase.NewProcessor(
		renderer,
		infra.NewChromedpRenderer(cfg.PDF.ChromePath, cfg.RenderTimeout()),
		narrator,
		images,
		render.NewPreviewer(cfg.PreviewDir, images),
	)
	svc := auth.NewService(users, auth.NewJWTGenerator(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWTTTL()))

	app := httpadapter.NewApp()
	app.Use(httpadapter.RequestLogger())
	httpadapter.Register(app,
		auth.Middleware(cfg.JWT.Secret, cfg.JWT.Issuer),
		httpadapter.NewAuthHandler(svc),
		httpadapter.NewHealthHandler(checkers...),
		httpadapter.NewHandler(wizard, processor),
	)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("listening",
		"port", cfg.Port,
		"user_store", cfg.UserStore,
		"document_store", cfg.DocumentStore,
		"session_store", cfg.SessionStore,
		"image_store", cfg.ImageStore,
		"narrator", cfg.LLM.Enabled,
	)
	return app.Listen(":" + cfg.Port)
}
