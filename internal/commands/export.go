package commands

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/app"
	"github.com/djangocon/conference-site/internal/export"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/service"
)

func exportCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an export to stdout",
	}

	var withContacts bool
	scheduleJSON := &cobra.Command{
		Use:   "schedule-json",
		Short: "Schedule feed for the video team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(opts, func(s *app.Services) error {
				var viewer *model.User
				if withContacts {
					viewer = &model.User{IsActive: true, IsStaff: true}
				}
				data, err := s.Schedule.ScheduleJSON(cmd.Context(), viewer)
				if err != nil {
					return err
				}
				return service.EncodeScheduleJSON(cmd.OutOrStdout(), data)
			})
		},
	}
	scheduleJSON.Flags().BoolVar(&withContacts, "with-contacts", false, "Include speaker emails")

	var kind string
	proposalsCSV := &cobra.Command{
		Use:   "proposals-csv",
		Short: "Proposals as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(opts, func(s *app.Services) error {
				return s.Proposals.WriteCSV(cmd.Context(), cmd.OutOrStdout(), kind)
			})
		},
	}
	proposalsCSV.Flags().StringVar(&kind, "kind", "", "Proposal kind slug (talk, tutorial, ...)")

	guidebook := &cobra.Command{
		Use:   "guidebook",
		Short: "Schedule as Guidebook CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(opts, func(s *app.Services) error {
				table, err := s.Schedule.Guidebook(cmd.Context())
				if err != nil {
					return err
				}
				return export.WriteCSV(cmd.OutOrStdout(), table)
			})
		},
	}

	cmd.AddCommand(scheduleJSON, proposalsCSV, guidebook)
	return cmd
}

func withServices(opts Options, fn func(*app.Services) error) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}
	return withDB(opts, false, func(db *gorm.DB) error {
		return fn(app.NewServices(db, cfg))
	})
}
