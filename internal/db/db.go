package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thatcatcamp/brandaura/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the database and migrates the schema
func Open(dbType, dbPath string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "sqlite":
		if dbPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(dbPath)
	case "mysql", "mariadb":
		dialector = mysql.Open(dbPath) // dbPath is DSN for MySQL
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every new connection to :memory: is a separate empty database
	if dbPath == ":memory:" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// Auto-migrate all models
	if err := conn.AutoMigrate(&models.SavedTheme{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return conn, nil
}

// InitDB initializes the package-level database connection
func InitDB(dbType, dbPath string) error {
	conn, err := Open(dbType, dbPath)
	if err != nil {
		return err
	}
	DB = conn
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database connection (used for testing)
func SetDB(database *gorm.DB) {
	DB = database
}
