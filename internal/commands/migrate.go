package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func migrateCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(opts, true, func(*gorm.DB) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return err
			})
		},
	}
}
