package database

import (
	"time"

	"github.com/stemwithlyn/booking/internal/common/config"
	"gorm.io/driver/mysql"
)

// NewMySQL creates a new MySQL instance
func NewMySQL(cfg *config.DatabaseConfig) (Database, error) {
	store, err := openStore(mysql.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}
	sqlDB, err := store.db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return store, nil
}
