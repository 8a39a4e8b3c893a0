package model

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ErrStoreUnavailable marks a missing aggregate store or a schema mismatch.
// Callers should run `jobpulse builddb` against the raw source to create it.
var ErrStoreUnavailable = errors.New("aggregate store unavailable, run `jobpulse builddb`")

type DBConfig struct {
	Path string `yaml:"path"`
}

func InitDB(dbConfig DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbConfig.Path), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	DB = db

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Company{}, &CompanyPeriodVacancy{}, &IndustryPeriodVacancy{})
}

// storeErr maps schema-level failures (typically a store that was never
// built) onto ErrStoreUnavailable so handlers can answer with guidance.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
