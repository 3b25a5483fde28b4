package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/seed"
)

func seedCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load a YAML conference fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open fixture: %w", err)
			}
			defer fh.Close()

			fixture, err := seed.Decode(fh)
			if err != nil {
				return err
			}

			return withDB(opts, true, func(db *gorm.DB) error {
				res, err := seed.Load(cmd.Context(), db, fixture)
				if err != nil {
					return err
				}
				opts.Log.Info("fixture loaded",
					slog.String("path", args[0]),
					slog.Int("slots", res.Slots),
					slog.Int("presentations", res.Presentations),
				)
				_, err = fmt.Fprintf(cmd.OutOrStdout(),
					"loaded %d users, %d speakers, %d proposals, %d slots, %d presentations, %d sponsors\n",
					res.Users, res.Speakers, res.Proposals, res.Slots, res.Presentations, res.Sponsors)
				return err
			})
		},
	}
}
