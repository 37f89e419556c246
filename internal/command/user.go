package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tracker/internal/adapter/postgres"
	"tracker/internal/app"
	"tracker/internal/domain"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := db.Close(); err != nil {
				return err
			}
			slog.InfoContext(cmd.Context(), "migrations applied")
			return nil
		},
	}
}

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(
		userListCommand(),
		userRoleCommand("promote", domain.RoleAdmin, "Grant the admin role"),
		userRoleCommand("demote", domain.RoleUser, "Revoke the admin role"),
	)
	return cmd
}

func userListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			users, err := roles(db).ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEMAIL\tUSERNAME\tROLE\tCREATED") //nolint:errcheck
			for _, u := range users {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Username, u.Role, u.CreatedAt.Format("2006-01-02")) //nolint:errcheck
			}
			return tw.Flush()
		},
	}
}

func userRoleCommand(use, role, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " EMAIL",
		Short: short,
		Long: short + ". The new role is carried by tokens issued at the\n" +
			"user's next sign-in.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			email := args[0]
			if err := roles(db).SetRole(cmd.Context(), email, role); err != nil {
				return err
			}
			slog.InfoContext(cmd.Context(), "role updated", slog.String("email", email), slog.String("role", role))
			return nil
		},
	}
}

// roles returns an AuthService for role management. It never hashes or
// issues tokens, so those collaborators are left unset.
func roles(db *postgres.DB) *app.AuthService {
	return app.NewAuthService(db, nil, nil)
}

func openStore(ctx context.Context) (*postgres.DB, error) {
	cfg, err := configFrom(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("database_url is required")
	}
	return postgres.Open(ctx, cfg.DatabaseURL)
}
