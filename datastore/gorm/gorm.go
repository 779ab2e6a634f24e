package gorm

import (
	"github.com/go-gormigrate/gormigrate/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/php369/kyc-blockchain-system/migrations"
)

func New() (*gorm.DB, error) {
	cfg := ParseConfig()

	db, err := gorm.Open(cfg.Dialector, cfg.Options)
	if err != nil {
		return nil, err
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations.List())
	if err := m.Migrate(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"type": cfg.DatabaseType}).Debug("Database migrated")

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		panic("unable to close database")
	}
	err = sqlDB.Close()
	if err != nil {
		panic("unable to close database")
	}
}
