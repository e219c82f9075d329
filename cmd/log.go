package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KostasZigo/mygit/internal/constants"
	"github.com/KostasZigo/mygit/internal/history"
	"github.com/KostasZigo/mygit/internal/objects"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// gitDateFormat matches the default date format of git log.
const gitDateFormat = "Mon Jan 2 15:04:05 2006 -0700"

var logCmd = &cobra.Command{
	Use:   "log [revision]",
	Short: "Show the commit history reachable from a revision",
	Long: `Show the commits reachable from a revision (HEAD by default).
Commits are listed breadth-first from the starting commit, following parents
in the order they are recorded. Every commit is printed once, even when it is
reachable through several merge paths.

Examples:
  # History of the current branch
  mygit log

  # The five most recent commits reachable from a commit
  mygit log -n 5 3b18e512dba79e4c8300dd08aeb37f8e728b8dad`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runLog,
}

var maxCountFlag int

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().IntVarP(&maxCountFlag, "max-count", "n", 0, "Limit the number of commits to output")
}

// maximumArgs validates command receives at most n positional arguments.
// Returns error with usage help if argument limit exceeded.
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// runLog resolves the starting revision and prints its traced history.
func runLog(cmd *cobra.Command, args []string) error {
	rev := constants.Head
	if len(args) > 0 {
		rev = args[0]
	}

	session, err := openSession()
	if err != nil {
		return err
	}

	hash, err := session.ResolveRevision(rev)
	if err != nil {
		return err
	}

	commits, err := session.Log(hash, history.WithMaxCount(maxCountFlag))
	if err != nil {
		return fmt.Errorf("failed to read history from %s: %w", hash, err)
	}

	out := cmd.OutOrStdout()
	for _, commit := range commits {
		writeCommit(out, commit)
	}
	return nil
}

// writeCommit prints a commit in the git log medium format.
func writeCommit(w io.Writer, commit *objects.Commit) {
	color.New(color.FgYellow).Fprintf(w, "commit %s", commit.Hash)
	fmt.Fprintln(w)

	if commit.IsMerge() {
		short := make([]string, 0, len(commit.Parents))
		for _, parent := range commit.Parents {
			short = append(short, parent.Short(constants.ShortHashLength))
		}
		fmt.Fprintf(w, "Merge: %s\n", strings.Join(short, " "))
	}

	fmt.Fprintf(w, "Author: %s\n", commit.Author.String())
	fmt.Fprintf(w, "Date:   %s\n\n", formatDate(commit.Author))

	message := strings.TrimRight(commit.Message, "\n")
	for _, line := range strings.Split(message, "\n") {
		if line == "" {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "    %s\n", line)
	}
	fmt.Fprintln(w)
}

// formatDate renders the signer timestamp, falling back to the raw token when it cannot be decoded.
func formatDate(signer objects.Signer) string {
	when, err := signer.When()
	if err != nil {
		return signer.Timestamp
	}
	return when.Format(gitDateFormat)
}
