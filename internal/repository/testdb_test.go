package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fundops/backoffice/internal/model"
)

// newTestDB 인메모리 sqlite 로 테스트 DB 를 만든다
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&model.Fund{},
		&model.FundMember{},
		&model.DocumentTemplate{},
		&model.GeneratedDocument{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func uintPtr(v uint) *uint {
	return &v
}
