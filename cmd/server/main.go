package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/picourse/api/internal/api"
	"github.com/picourse/api/internal/app"
	"github.com/picourse/api/internal/config"
	"github.com/picourse/api/internal/repository"
	"github.com/picourse/api/internal/seed"
	"github.com/picourse/api/internal/service"
	"github.com/picourse/api/internal/token"
	"go.uber.org/zap"
)

func main() {
	seedDemo := flag.Bool("seed", false, "insert demo data after migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := app.ConnectDB(ctx, cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	userRepo := repository.NewUserRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	tutorRepo := repository.NewTutorRepository(pool)
	lessonRepo := repository.NewLessonRequestRepository(pool)
	directory := repository.NewDirectory(userRepo, subjectRepo)

	if *seedDemo {
		seeder := &seed.Seeder{
			Users:    userRepo,
			Tutors:   tutorRepo,
			Subjects: subjectRepo,
			Lessons:  lessonRepo,
			Logger:   logger,
		}
		if err := seeder.Run(ctx); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	tokens := token.NewManager(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, tutorRepo, tokens, logger)
	tutorService := service.NewTutorService(tutorRepo, subjectRepo, logger)
	lessonService := service.NewLessonService(lessonRepo, directory, logger)

	handler := api.NewHandler(authService, tutorService, lessonService, tokens, logger)
	router := api.NewRouter(handler, pool)

	logger.Info("starting pi course api",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
	)

	if err := app.RunHTTP(ctx, cfg.HTTPAddr, router, logger); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
