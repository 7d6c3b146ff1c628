package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"anime-stream/internal/models"

	"github.com/spf13/cobra"
)

var roleName string

// rolesCmd represents the roles command
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage user roles",
	Long: `Grant, revoke and list roles held by auth-service users.

Subcommands:
  grant   - Give a user a role
  revoke  - Take a role away from a user
  list    - Show every user holding a role`,
}

var rolesGrantCmd = &cobra.Command{
	Use:   "grant <user-id>",
	Short: "Give a user a role",
	Long: `Give a user a role. Granting a role the user already holds is a no-op.

Examples:
  animectl roles grant 6f1c...            # Make the user an admin
  animectl roles grant 6f1c... --role ops # Grant another role`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := userIDArg(args)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *store) error {
			if err := s.roles.Grant(cmd.Context(), userID, roleName); err != nil {
				return fmt.Errorf("failed to grant role: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Granted %q to %s\n", roleName, userID)
			return nil
		})
	},
}

var rolesRevokeCmd = &cobra.Command{
	Use:   "revoke <user-id>",
	Short: "Take a role away from a user",
	Long: `Take a role away from a user. The user's next admin request is refused
and their session is ended.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := userIDArg(args)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *store) error {
			removed, err := s.roles.Revoke(cmd.Context(), userID, roleName)
			if err != nil {
				return fmt.Errorf("failed to revoke role: %w", err)
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s does not hold %q\n", userID, roleName)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revoked %q from %s\n", roleName, userID)
			return nil
		})
	},
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every user holding a role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store) error {
			rows, err := s.roles.ListByRole(cmd.Context(), roleName)
			if err != nil {
				return fmt.Errorf("failed to list roles: %w", err)
			}

			if jsonOutput {
				if rows == nil {
					rows = []models.UserRole{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No users hold %q\n", roleName)
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "USER ID\tROLE\tGRANTED AT")
			for _, row := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\n", row.UserID, row.Role, row.CreatedAt.UTC().Format(time.RFC3339))
			}
			return w.Flush()
		})
	},
}

func userIDArg(args []string) (string, error) {
	userID := strings.TrimSpace(args[0])
	if userID == "" {
		return "", fmt.Errorf("user id must not be empty")
	}
	return userID, nil
}

func init() {
	rolesCmd.PersistentFlags().StringVar(&roleName, "role", models.RoleAdmin, "Role name")

	rolesCmd.AddCommand(rolesGrantCmd)
	rolesCmd.AddCommand(rolesRevokeCmd)
	rolesCmd.AddCommand(rolesListCmd)
	rootCmd.AddCommand(rolesCmd)
}
