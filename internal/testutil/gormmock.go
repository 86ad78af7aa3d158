// Package testutil holds helpers shared by repository tests.
package testutil

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/saulo-duarte/habits-lambda/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGormMock returns a gorm handle over sqlmock configured exactly like the
// production connection. Queries are matched as regular expressions.
func NewGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := config.Open(postgres.New(postgres.Config{Conn: sqlDB}))
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return db, mock
}
