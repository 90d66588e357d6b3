package database

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// registers the CGO-free "sqlite" driver used below and by the tests
	_ "modernc.org/sqlite"
)

// Connect opens the database behind the DSN: PostgreSQL for postgres:// DSNs,
// otherwise a local SQLite file (modernc driver, no CGO).
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.WithField("dsn", dsn).Info("using SQLite for local development")

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}
