package cmd

import (
	"fmt"

	"github.com/planora/server/internal/config"
	"github.com/planora/server/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var (
	migrationsPath string
	migrateSteps   int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Run database schema migrations",
	Long: `Apply or roll back the database schema.

"up" applies all pending migrations. "down" rolls back --steps
migrations (default 1). The database URL comes from DATABASE_URL.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		return runMigrations(cfg, args[0])
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "", "migrations directory (default: "+postgres.DefaultMigrationsPath+")")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back (down only)")
}

func runMigrations(cfg config.Config, direction string) error {
	switch direction {
	case "up":
		return postgres.MigrateUp(cfg.Database.URL, migrationsPath)
	case "down":
		return postgres.MigrateDown(cfg.Database.URL, migrationsPath, migrateSteps)
	default:
		return fmt.Errorf("unknown direction %q (want up or down)", direction)
	}
}
