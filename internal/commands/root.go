package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/config"
)

// Options — внешние зависимости команд; в тестах подменяются.
type Options struct {
	Out io.Writer
	Log *slog.Logger
	// OpenDB открывает БД; migrate — прогнать миграции перед работой.
	OpenDB     func(migrate bool) (*gorm.DB, func() error, error)
	LoadConfig func() (*config.AppConfig, error)
}

func NewRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "manage",
		Short:         "Conference site management commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(opts.Out)

	cmd.AddCommand(
		migrateCmd(opts),
		createUserCmd(opts),
		seedCmd(opts),
		exportCmd(opts),
	)
	return cmd
}

// withDB открывает БД на время выполнения fn.
func withDB(opts Options, migrate bool, fn func(db *gorm.DB) error) error {
	db, closeDB, err := opts.OpenDB(migrate)
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(db)
}
