// Package main provides leadctl, an operator tool for the leadboard database.
//
// Usage:
//
//	leadctl user create --email ops@example.com --name Ops --role admin --password ...
//	leadctl user list
//	leadctl user set-role <user-id> employee
//	leadctl seed --websites 5 --leads 200
//
// The server must be stopped first: the session store allows a single process.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leadboard/leadboard-server/internal/config"
	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/logger"
	"github.com/leadboard/leadboard-server/internal/store/sessionstore"
	"github.com/leadboard/leadboard-server/internal/store/sqlite"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	dataPath string
	envFile  string
	verbose  bool

	rootCmd = &cobra.Command{
		Use:           "leadctl",
		Short:         "Manage leadboard accounts and data from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the leadctl version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "leadctl", version)
		},
	}
)

// cliActor is the identity administrative commands run as.
var cliActor = &domain.User{ID: "leadctl", Name: "leadctl", Role: domain.RoleAdmin}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data-path", "", "Data directory (default: $DATA_PATH or ~/leadboard)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log store activity")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newSeedCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env holds the stores a command operates on.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *sqlite.Store
	sessions *sessionstore.Store
}

func (e *env) Close() {
	if e.sessions != nil {
		_ = e.sessions.Close()
	}
	_ = e.store.Close()
}

// openEnv resolves configuration the same way the server does and opens the
// stores. withSessions also opens the session store, for commands that revoke sessions.
func openEnv(withSessions bool) (*env, error) {
	args := []string{"--env-file", envFile}
	if dataPath != "" {
		args = append(args, "--data-path", dataPath)
	}
	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}

	log := logger.Discard()
	if verbose {
		log = logger.New(logger.Config{
			Writer:      os.Stderr,
			Level:       logger.ParseLevel(cfg.Logger.Level),
			Environment: cfg.App.Environment,
		})
	}

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	st, err := sqlite.Open(cfg.Storage.DatabasePath(), log.Logger)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: log, store: st}

	if withSessions {
		sessions, err := sessionstore.Open(cfg.Storage.SessionsPath(), log.Logger, sessionstore.Options{})
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("open session store (is the server running?): %w", err)
		}
		e.sessions = sessions
	}

	return e, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
