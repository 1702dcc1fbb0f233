package database

import (
	"github.com/fundops/backoffice/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitDB(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		// github.com/glebarez/sqlite 드라이버 사용 (cgo 불필요)
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Fund{},
		&model.FundMember{},
		&model.DocumentTemplate{},
		&model.GeneratedDocument{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
