package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Plant{},
		&types.CareProfile{},
		&types.MaintenanceTask{},
		&types.GrowthSample{},
		&types.CareBackfill{},
	)
}

// EnsureGardenConstraints adds what AutoMigrate cannot express: the cascade
// from plant to its dependents and the one-pending-task-per-kind guarantee.
func EnsureGardenConstraints(db *gorm.DB) error {
	for _, stmt := range []struct {
		name string
		sql  string
	}{
		{"fk_care_profile_plant", `
			ALTER TABLE "care_profile"
			DROP CONSTRAINT IF EXISTS "fk_care_profile_plant";
		`},
		{"fk_care_profile_plant_add", `
			ALTER TABLE "care_profile"
			ADD CONSTRAINT "fk_care_profile_plant"
			FOREIGN KEY ("plant_id") REFERENCES "plant"("id")
			ON DELETE CASCADE;
		`},
		{"fk_maintenance_task_plant", `
			ALTER TABLE "maintenance_task"
			DROP CONSTRAINT IF EXISTS "fk_maintenance_task_plant";
		`},
		{"fk_maintenance_task_plant_add", `
			ALTER TABLE "maintenance_task"
			ADD CONSTRAINT "fk_maintenance_task_plant"
			FOREIGN KEY ("plant_id") REFERENCES "plant"("id")
			ON DELETE CASCADE;
		`},
		{"fk_growth_sample_plant", `
			ALTER TABLE "growth_sample"
			DROP CONSTRAINT IF EXISTS "fk_growth_sample_plant";
		`},
		{"fk_growth_sample_plant_add", `
			ALTER TABLE "growth_sample"
			ADD CONSTRAINT "fk_growth_sample_plant"
			FOREIGN KEY ("plant_id") REFERENCES "plant"("id")
			ON DELETE CASCADE;
		`},
		{"fk_care_backfill_plant", `
			ALTER TABLE "care_backfill"
			DROP CONSTRAINT IF EXISTS "fk_care_backfill_plant";
		`},
		{"fk_care_backfill_plant_add", `
			ALTER TABLE "care_backfill"
			ADD CONSTRAINT "fk_care_backfill_plant"
			FOREIGN KEY ("plant_id") REFERENCES "plant"("id")
			ON DELETE CASCADE;
		`},
		// Serializes concurrent completions of the same obligation kind: the
		// second follow-on insert violates this index and surfaces as a
		// conflict instead of double-scheduling.
		{"uniq_pending_task_plant_kind", `
			CREATE UNIQUE INDEX IF NOT EXISTS uniq_pending_task_plant_kind
			ON maintenance_task (plant_id, kind)
			WHERE completed_at IS NULL;
		`},
	} {
		if err := db.Exec(stmt.sql).Error; err != nil {
			return fmt.Errorf("migrate %s: %w", stmt.name, err)
		}
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureGardenConstraints(s.db); err != nil {
		s.log.Error("Constraint migration failed", "error", err)
		return err
	}
	return nil
}
