package system

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/pkg/database"
)

func NewMigrateCommand() *cobra.Command {
	var unsafe bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			fmt.Println("Running migrations.")
			client, err := database.NewClient(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout())
			defer cancel()

			safe := cfg.Database.Migrations.SafeMode && !unsafe
			if err := database.Migrate(ctx, client, safe); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			fmt.Println("Migrations executed successfully.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&unsafe, "drop", false, "allow dropping columns and indexes that are no longer in the schema")

	return cmd
}
