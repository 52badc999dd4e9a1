package migrate

import (
	"fmt"

	"github.com/Domenick1991/airbooking/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects gorm to PostgreSQL for schema management only.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// Run creates or updates all tables, indexes, checks and foreign keys. It is idempotent.
func Run(db *gorm.DB, log *logger.Logger) error {
	log.LogProcess("MIGRATE", "migrating tables")
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	migrator := db.Migrator()
	for _, fk := range ForeignKeys {
		if migrator.HasConstraint(fk.Table, fk.Name) {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q (id)`,
			fk.Table, fk.Name, fk.Column, fk.Reference)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", fk.Name, err)
		}
		log.LogDatabase("MIGRATE", fk.Table, "added constraint "+fk.Name)
	}

	log.LogProcess("MIGRATE", "schema is up to date")
	return nil
}

// Reset drops every table. Only used against test databases.
func Reset(db *gorm.DB) error {
	ms := models()
	for i := len(ms) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(ms[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
