package commands

import (
	"fmt"
	"io"
	"os"

	"anime-stream/internal/config"
	"anime-stream/internal/database"
	"anime-stream/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "animectl",
	Short: "Operator tooling for AnimeStream",
	Long: `animectl manages the AnimeStream database out of band.

It reads the same envs/.env.<GO_ENV> files and DB_* variables as the server.
Admin access is granted by adding an "admin" row to user_roles; the server
checks that table on every admin request, so changes apply immediately.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// store is what the commands need from the database. Tests swap openStore.
type store struct {
	roles   repository.UserRoleRepository
	migrate func() error
	close   func() error
}

var openStore = func(out io.Writer) (*store, error) {
	log := logrus.New()
	log.SetOutput(out)
	if !verbose {
		log.SetLevel(logrus.WarnLevel)
	}
	config.LoadEnvFile(log)

	cfg := config.Load()
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	return &store{
		roles:   repository.NewUserRoleRepository(db),
		migrate: db.Migrate,
		close:   db.Close,
	}, nil
}

func withStore(cmd *cobra.Command, fn func(s *store) error) error {
	s, err := openStore(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := s.close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error closing database: %v\n", err)
		}
	}()
	return fn(s)
}
