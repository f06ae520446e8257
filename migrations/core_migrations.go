package migrations

import (
	"roster-api/packages/core/models"

	"gorm.io/gorm"
)

// At most one active assignment per player, team and championship.
const createActiveAssignmentIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_team_assignments_active
	ON team_assignments (player_id, team_name, championship_name)
	WHERE left_date IS NULL`

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_01_000000_create_roster_tables",
			Up: func(db *gorm.DB) error {
				// Parents first so foreign keys resolve
				if err := db.Migrator().CreateTable(
					&models.Player{},
					&models.TeamAssignment{},
					&models.PlayerStatistic{},
				); err != nil {
					return err
				}
				return db.Exec(createActiveAssignmentIndex).Error
			},
			Down: func(db *gorm.DB) error {
				// Drop tables in reverse order (because of foreign keys)
				return db.Migrator().DropTable(
					&models.PlayerStatistic{},
					&models.TeamAssignment{},
					&models.Player{},
				)
			},
		},
	}
}

// GetAllMigrations returns every schema migration in the order it must run.
func GetAllMigrations() []MigrationDefinition {
	return GetCoreMigrations()
}

// Register adds every schema migration to m.
func Register(m *Migrator) {
	for _, migration := range GetAllMigrations() {
		m.AddMigration(migration)
	}
}
