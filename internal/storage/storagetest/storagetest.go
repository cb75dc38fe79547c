// Package storagetest поднимает временную sqlite-базу для тестов
package storagetest

import (
	"path/filepath"
	"testing"
	"tgclasses/internal/config"
	"tgclasses/internal/logger"
	"tgclasses/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB открывает sqlite-файл во временном каталоге теста и прогоняет миграции.
// База закрывается по завершении теста.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := storage.Open(config.DBConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}, logger.Discard())
	require.NoError(t, err, "Ошибка подключения к тестовой базе")
	require.NoError(t, storage.Migrate(db), "Ошибка миграции тестовой базы")

	t.Cleanup(func() {
		_ = storage.Close(db)
	})
	return db
}
