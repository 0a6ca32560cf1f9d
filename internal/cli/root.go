// Package cli is the cobra command surface: sync, discover, repos and
// report. It owns all terminal output; everything below it reports
// through return values and the logger it injects.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitpulse/gitpulse/internal/config"
	"github.com/gitpulse/gitpulse/internal/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gitpulse",
	Short: "Track and analyze your git activity across repositories",
	Long: `gitpulse ingests the commit history of your local git repositories into
a local database and derives activity reports from it: time-of-day
patterns, commit sizes, streaks and per-repository contribution.

Use 'gitpulse discover' to find and register repositories,
'gitpulse sync' to ingest new commits and 'gitpulse report' to render
a summary of a time period.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Init(cfgFile)
	},
}

// Execute runs the CLI. Errors have already been printed by cobra.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .gitpulse.yaml in . or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostics")
	rootCmd.PersistentFlags().String("db", "", "Database path (default ~/.gitpulse/gitpulse.db)")

	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
}

// VerboseLog prints a diagnostic line when --verbose is set.
func VerboseLog(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// logger adapts CLI output to the Warnf/Debugf interfaces the internal
// packages accept.
type logger struct{}

func (logger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "  warning: "+format+"\n", args...)
}

func (logger) Debugf(format string, args ...any) {
	VerboseLog(format, args...)
}

// openStore opens the configured database.
func openStore(cfg *config.Config) (*store.DB, error) {
	VerboseLog("Opening database at %s", cfg.DBPath)
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}
