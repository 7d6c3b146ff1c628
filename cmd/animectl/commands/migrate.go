package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Long: `Create or update the anime, advertisements and user_roles tables.

The server does this on startup as well; run it ahead of a deploy to keep
schema changes out of the boot path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store) error {
			if err := s.migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
