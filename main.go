package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "tgclasses/docs"
	"tgclasses/internal/cache"
	"tgclasses/internal/config"
	"tgclasses/internal/handlers"
	"tgclasses/internal/logger"
	"tgclasses/internal/repository"
	"tgclasses/internal/service"
	"tgclasses/internal/storage"
	"tgclasses/internal/tasks"
	"tgclasses/internal/tracing"
	"tgclasses/internal/ws"

	"github.com/gin-gonic/gin"
)

// @Title		Расписание занятий и RSVP для Telegram
// @Version	1.0
func main() {
	loaded, err := config.LoadDotEnv()
	if err != nil {
		log.Fatal("Ошибка получения .env: ", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка конфигурации: ", err)
	}

	logr := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logr)
	if loaded {
		logr.Info("Подключение к .env")
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logr, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		logr.Error("Ошибка инициализации трассировки", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DB, logr)
	if err != nil {
		logr.Error("Ошибка подключения к базе данных", slog.Any("error", err))
		os.Exit(1)
	}
	defer storage.Close(db)

	if err := storage.Migrate(db); err != nil {
		logr.Error("Ошибка при миграции", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := storage.NewRedis(ctx, cfg.Redis, logr)
	if err != nil {
		// без кэша сервис работает, просто медленнее
		logr.Warn("Redis недоступен, кэш отключён", slog.Any("error", err))
		redisClient = nil
	}

	var listCache service.ListCache
	if redisClient != nil {
		defer redisClient.Close()
		listCache = cache.NewClassListCache(redisClient, cfg.CacheTTL, logr)
	}

	hub := ws.NewHub(logr)
	go hub.Run(ctx)

	repos := repository.New(db, logr)
	svc := service.NewClassService(service.Deps{
		Users:     repos.Users,
		Classes:   repos.Classes,
		RSVPs:     repos.RSVPs,
		Questions: repos.Questions,
		Cache:     listCache,
		Notifier:  hub,
		Logger:    logr,
	})

	if cfg.ClassRetentionDays > 0 {
		planner := tasks.NewPlanner(repos.Classes, listCache, cfg.ClassRetentionDays, logr)
		scheduler, err := planner.Start(cfg.PurgeCron)
		if err != nil {
			logr.Error("Ошибка запуска cron-задачи", slog.Any("error", err))
			os.Exit(1)
		}
		defer scheduler.Stop()
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Classes:        handlers.NewClassHandler(svc, hub, logr),
		Health:         handlers.NewHealthHandler(db, redisClient),
		Logger:         logr,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           tracing.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("Сервер запущен", slog.String("addr", srv.Addr), slog.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("Ошибка запуска сервера", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("Ошибка остановки сервера", slog.Any("error", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logr.Error("Ошибка остановки трассировки", slog.Any("error", err))
	}
}
