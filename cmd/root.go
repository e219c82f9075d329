package cmd

import (
	"log/slog"
	"os"

	"github.com/KostasZigo/mygit/internal/repository"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// rootCmd defines the base command for the mygit CLI.
// All subcommands (log, cat-file, rev-parse) register under this root.
// Uses cobra for command parsing, flag handling, and help generation.
var rootCmd = &cobra.Command{
	Use:   "mygit",
	Short: "A read-only Git history viewer in GO",
	Long: `MyGit reads the loose objects of a Git repository directly from disk,
decodes commits and walks their ancestry to print a linear history.`,
	Version:           "0.1.0",
	PersistentPreRunE: configureRoot,
}

var (
	gitDirFlag  string
	verboseFlag bool
	noColorFlag bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&gitDirFlag, "git-dir", "", "Path to the repository metadata directory (skips discovery)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configureRoot installs the process logger and color settings before any subcommand runs.
func configureRoot(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verboseFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if noColorFlag {
		color.NoColor = true
	}
	return nil
}

// openSession opens the repository named by --git-dir, or discovers it from the working directory.
func openSession() (*repository.Session, error) {
	if gitDirFlag != "" {
		return repository.Open(gitDirFlag)
	}
	return repository.Discover(".")
}
