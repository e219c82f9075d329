package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// createTestRootCmd creates a fresh root command carrying the persistent flags
// and logger setup of rootCmd, with cmd registered as its only subcommand.
func createTestRootCmd(t *testing.T, cmd *cobra.Command) *cobra.Command {
	t.Helper()

	resetFlags(t, cmd)

	testRootCmd := &cobra.Command{Use: "mygit", PersistentPreRunE: configureRoot}
	testRootCmd.PersistentFlags().StringVar(&gitDirFlag, "git-dir", "", "")
	testRootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "")
	testRootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "")
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

// resetFlags restores every local flag of cmd to its default, both before the
// test and after it, so values and "changed" marks never leak between tests.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()

	reset := func() {
		cmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Value.Set(flag.DefValue)
			flag.Changed = false
		})
	}
	reset()
	t.Cleanup(reset)

	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = previous
	})
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// changeToRepoDir changes working directory to the work tree that owns gitDir
// and registers cleanup.
func changeToRepoDir(t *testing.T, gitDir string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	repoPath := filepath.Dir(gitDir)
	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}
