package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"swasthsetu/internal/config"
	"swasthsetu/internal/infra"
	"swasthsetu/internal/logging"
	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/repositories"
	"swasthsetu/internal/seed"
	"swasthsetu/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "swasthctl",
	Short:         "Operational tasks for the SwasthSetu API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(cfg *config.Config, db *gorm.DB) error {
			if err := infra.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert seed clinics and a welcome alert (safe to re-run)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(cfg *config.Config, db *gorm.DB) error {
			res, err := seed.Run(cmd.Context(), db, logging.New(cfg))
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d clinics (welcome alert created: %v)\n", res.Clinics, res.AlertCreated)
			return nil
		})
	},
}

var grantRoleCmd = &cobra.Command{
	Use:   "grant-role <email> <role>",
	Short: "Give an existing account a staff role (health_worker, officer, admin) or reset it to migrant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(cfg *config.Config, db *gorm.DB) error {
			user, err := services.AssignRole(cmd.Context(), repositories.NewUserRepository(db), args[0], db_models.Role(args[1]))
			if err != nil {
				return fmt.Errorf("grant-role: %w", err)
			}
			logging.New(cfg).WithFields(logrus.Fields{
				"user_id": user.ID,
				"role":    user.Role,
			}).Info("role granted")
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (takes effect at next login)\n", user.Email, user.Role)
			return nil
		})
	},
}

func withDB(fn func(cfg *config.Config, db *gorm.DB) error) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	db, err := infra.InitPostgresql(cfg)
	if err != nil {
		return err
	}
	defer infra.ClosePostgresql(db)
	return fn(cfg, db)
}

func main() {
	rootCmd.AddCommand(migrateCmd, seedCmd, grantRoleCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
