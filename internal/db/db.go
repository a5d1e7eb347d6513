package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/booking-crm/internal/config"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

// Rejects two non-cancelled appointments of one business whose [start, end)
// ranges overlap. Needs btree_gist for the equality part on business_id.
const exclusionConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
	) THEN
		ALTER TABLE appointments
		ADD CONSTRAINT appointments_no_overlap
		EXCLUDE USING gist (
			business_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		) WHERE (status <> 'cancelled');
	END IF;
END
$$;`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if !cfg.IsProduction() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.Int("max_open_conns", 10))
	return db, nil
}

// Migrate creates the tables and the overlap constraint. Safe to rerun.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(exclusionConstraint).Error; err != nil {
		return fmt.Errorf("add overlap constraint: %w", err)
	}

	return nil
}

// Ping checks the connection within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
