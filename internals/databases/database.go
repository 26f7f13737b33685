package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialector picks the storage driver from DB_DRIVER (postgres | sqlite).
func Dialector() gorm.Dialector {
	switch getenv("DB_DRIVER", "postgres") {
	case "sqlite":
		path := getenv("SQLITE_PATH", "hostelhub.db")
		// busy_timeout keeps concurrent writers waiting instead of failing fast
		return sqlite.Open(fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000", path))
	default:
		sslmode := getenv("DB_SSLMODE", "require")
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=hostelhub&options=-c statement_timeout=3000",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			getenv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
			sslmode,
		)
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // PgBouncer (transaction pooling)
		})
	}
}

// ConnectDB opens the global handle. gl may be nil (silent).
func ConnectDB(gl gormLogger.Interface) (*gorm.DB, error) {
	if gl == nil {
		gl = gormLogger.Default.LogMode(gormLogger.Silent)
	}
	db, err := gorm.Open(Dialector(), &gorm.Config{
		Logger:         gl,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	DB = db
	log.Println("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	if db.Dialector.Name() == "sqlite" {
		// one writer at a time; sqlite serializes anyway
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB, l *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(db); err != nil {
			l.Warn("warm-up ping failed", zap.Error(err))
			return
		}
		var n int64
		if err := db.Table("rooms").Count(&n).Error; err != nil {
			l.Warn("warm-up query failed", zap.Error(err))
		}
	}()
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
