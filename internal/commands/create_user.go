package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/repository"
	"github.com/djangocon/conference-site/internal/service"
)

func createUserCmd(opts Options) *cobra.Command {
	var params service.NewUserParams

	cmd := &cobra.Command{
		Use:   "create-user <username>",
		Short: "Create an active user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Username = args[0]
			return withDB(opts, true, func(db *gorm.DB) error {
				identity := service.NewIdentityService(repository.NewGormUserRepository(db))
				u, err := identity.CreateUser(cmd.Context(), params)
				if err != nil {
					return err
				}
				opts.Log.Info("user created",
					slog.String("username", u.Username),
					slog.Bool("staff", u.IsStaff),
					slog.Bool("superuser", u.IsSuperuser),
				)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", u.Username, u.ID)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&params.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&params.Password, "password", "", "Password")
	cmd.Flags().BoolVar(&params.Staff, "staff", false, "Grant staff access to exports")
	cmd.Flags().BoolVar(&params.Superuser, "superuser", false, "Grant superuser access")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
