// Команда migrate создаёт или обновляет схему базы данных и завершается.
package main

import (
	"log"
	"log/slog"
	"os"

	"tgclasses/internal/config"
	"tgclasses/internal/logger"
	"tgclasses/internal/storage"
)

func main() {
	if _, err := config.LoadDotEnv(); err != nil {
		log.Fatal("Ошибка получения .env: ", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка конфигурации: ", err)
	}
	logr := logger.New(cfg.LogLevel, cfg.LogFormat)

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
	logr.Info("Миграция выполнена", slog.String("driver", cfg.DB.Driver))
}
