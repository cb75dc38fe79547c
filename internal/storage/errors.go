package storage

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// IsConstraintViolation сообщает, нарушила ли операция ограничение уникальности или внешнего ключа.
// Помимо ошибок, переведённых gorm, проверяются «сырые» ошибки драйверов.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation, 23503 foreign_key_violation
		return pgErr.Code == "23505" || pgErr.Code == "23503"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		// 1062 duplicate entry, 1452 foreign key fails
		return myErr.Number == 1062 || myErr.Number == 1452
	}
	return false
}
