package db

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mfp/backend/internal/models"
)

var passwordRegex = regexp.MustCompile(`(password=)(\S+)`)

// ConnectAndMigrate opens the database named by dsn and brings the schema up
// to date. Postgres DSNs can use SQL migrations via golang-migrate when
// MIGRATIONS=1; everything else falls back to AutoMigrate (dev convenience,
// and the only option for SQLite files).
func ConnectAndMigrate(dsn string, log *zap.Logger) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty, check the environment configuration")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	usePostgres := IsPostgresDSN(dsn)
	var conn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		if usePostgres {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			conn, err = gorm.Open(sqlite.Open(dsn), cfg)
		}
		if err == nil {
			break
		}
		log.Warn("retrying DB connection", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Info("database connected", zap.String("dsn", passwordRegex.ReplaceAllString(dsn, "${1}***")))

	if usePostgres && boolEnv("MIGRATIONS") {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []any{
			&models.Customer{}, &models.User{}, &models.Product{},
			&models.Invoice{}, &models.InvoiceItem{}, &models.InvoiceSequence{},
		} {
			if migErr := conn.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	if boolEnv("DB_SEED") {
		if err := Seed(conn, log); err != nil {
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}
	return conn, nil
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func boolEnv(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
