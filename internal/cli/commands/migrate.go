package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/storage"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config *config.Config
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config) *MigrateCommand {
	return &MigrateCommand{config: cfg}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	db := storage.NewMySQLStorage(mc.config.Database)
	defer db.Close()
	if err := db.Migrate(cmd.Context()); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Schema ready in database %s\n", mc.config.Database.Name)
	return nil
}
